package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxUploadMB caps the size of uploaded curation files.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"64"`
	// LibraryPath is the library CSV loaded at startup and matched against
	// by the upload endpoint. May point to a local file or an s3:// object.
	LibraryPath string `mapstructure:"library_path" default:""`
}

// BodyLimit returns the Fiber body limit in bytes derived from MaxUploadMB.
func (c Config) BodyLimit() int {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = 64
	}
	return mb * 1024 * 1024
}
