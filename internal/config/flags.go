package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagVariant     = flag.String("variant", "", "Build only the named variant")
	flagShaderDir   = flag.String("shader-dir", "", "Directory searched for shader files")
	flagWatch       = flag.Bool("watch", false, "Rebuild variants when their files change")
	flagNoTranslate = flag.Bool("no-translate", false, "Hand sources to the driver untranslated")
	flagShow        = flag.Bool("show", false, "Show the window instead of keeping it hidden")
	flagList        = flag.Bool("list", false, "List the selected variants and exit")
	flagWriteConfig = flag.Bool("write-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ListOnly reports whether -list was given.
func ListOnly() bool {
	return *flagList
}

// WriteConfig reports whether -write-config was given.
func WriteConfig() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagVariant != "" {
		cfg.Shaders.Only = *flagVariant
	}
	if *flagShaderDir != "" {
		cfg.Shaders.Dirs = append(cfg.Shaders.Dirs, *flagShaderDir)
	}
	if *flagWatch {
		cfg.Shaders.Watch = true
	}
	if *flagNoTranslate {
		cfg.Shaders.Translate = false
	}
	if *flagShow {
		cfg.Window.Visible = true
	}
}
