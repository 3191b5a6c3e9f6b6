package kanacheck

import (
	"context"
	"fmt"

	"github.com/Alfex4936/kanacheck/internal/allow"
	"github.com/Alfex4936/kanacheck/internal/net"
	"github.com/Alfex4936/kanacheck/internal/parse"
)

// Recommend is the allow-list entry that keeps the built-in list.
const Recommend = allow.Recommend

// LoadAllow reads an allow-list file: JSON, YAML or TOML holding a list
// (or {"allow": [...]}), or plain text with one entry per line.
func LoadAllow(path string) ([]string, error) {
	return allow.LoadFile(path)
}

// FetchAllow downloads an allow list. The format follows the URL path
// extension, like LoadAllow.
func FetchAllow(ctx context.Context, url string) ([]string, error) {
	body, err := net.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	list, err := parse.Decode(body, net.PathOf(url))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return list, nil
}

// ExpandAllow resolves list against the built-in one (see Options.Allow)
// and expands every "$num$" placeholder.
func ExpandAllow(list []string) []string {
	return allow.NewMatcher(list).Entries()
}
