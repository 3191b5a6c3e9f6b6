package kanacheck

import (
	"errors"

	"github.com/Alfex4936/kanacheck/internal/net"
	"github.com/Alfex4936/kanacheck/internal/parse"
)

var (
	// ErrInvalidAllow signals an allow list with non-string members.
	ErrInvalidAllow = parse.ErrInvalidAllow
	// ErrFetch signals a remote allow list that could not be downloaded.
	ErrFetch = net.ErrFetch
	// ErrEmptyText is returned by the HTTP API for a request without text.
	ErrEmptyText = errors.New("kanacheck: text is empty")
)
