// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	effective := Config{}
	if cfg != nil {
		effective = *cfg
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Env File:        %s\n", effective.EnvFilePath())
	fmt.Fprintf(out, "  Env Template:    %s\n", effective.EnvTemplatePath())
	fmt.Fprintf(out, "  Models Dir:      %s\n", effective.ModelsDirPath())
	fmt.Fprintf(out, "  Catalog URL:     %s\n", effective.CatalogEndpoint())
	fmt.Fprintf(out, "  Catalog Max Age: %s\n", effective.CatalogMaxAge())
	fmt.Fprintf(out, "  Runtime Binary:  %s\n", effective.Binary())
	fmt.Fprintf(out, "  Server URL:      %s\n", effective.ServerBaseURL())
	fmt.Fprintf(out, "  Request Timeout: %s\n", effective.RequestTimeout())
	fmt.Fprintf(out, "  Log File:        %s\n", effective.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", effective.Debug)
}
