package shader

// Variant is a shader pair together with the names its draw code binds.
type Variant struct {
	Name       string
	Source     Source
	Attributes []string
	Uniforms   []string
}
