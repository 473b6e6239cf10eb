package jimage

import "log/slog"

// Option configures an Image.
type Option func(*Image)

// WithLogger sets the logger used for diagnostics.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(img *Image) {
		img.logger = logger
	}
}

// WithDefaultModule sets the module FindClass looks classes up in.
// Defaults to DefaultModule.
func WithDefaultModule(module string) Option {
	return func(img *Image) {
		img.defaultModule = module
	}
}

// WithVersion makes Open and New fail with ErrVersion unless the image
// carries exactly this version. By default the version is not checked.
func WithVersion(major, minor uint16) Option {
	return func(img *Image) {
		img.checkVersion = true
		img.major = major
		img.minor = minor
	}
}
