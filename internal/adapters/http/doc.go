// Package http implements the HTTP(S) source document fetcher.
package http
