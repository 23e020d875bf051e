// Package slog provides logging decorators for libcache services.
package slog
