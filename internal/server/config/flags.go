package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/doccatalog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-s string   storage backend: bolt or postgres
//	-f string   bbolt database file
//	-d string   PostgreSQL DSN
//	-m int      maximum upload size, MiB
//	-l string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name (empty disables archiving)
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-o string   comma separated CORS origins ("*" allows any)
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-f", "-d", "-m", "-l", "-u", "-p", "-b", "-g", "-e", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run server")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (bolt|postgres)")
	fs.StringVar(&cfg.BoltPath, "f", cfg.BoltPath, "bbolt database file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	maxUpload := fs.Int64("m", cfg.MaxUploadSize>>20, "maximum upload size (in MiB)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 root user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 root password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")

	origins := fs.String("o", strings.Join(cfg.CORSOrigins, ","), "CORS origins")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.CORSOrigins = splitList(*origins)

	cfg.MaxUploadSize = *maxUpload << 20
	return nil
}
