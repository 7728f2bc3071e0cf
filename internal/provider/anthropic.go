// Package provider constructs the Anthropic API client.
package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = anthropic.ModelClaudeSonnet4_0

// NewClient returns a client using the API key from the environment
// (ANTHROPIC_API_KEY), with optional extra request options for tests.
func NewClient(opts ...option.RequestOption) *anthropic.Client {
	c := anthropic.NewClient(opts...)
	return &c
}

// Model resolves the configured model name, falling back to the default.
func Model(name string) anthropic.Model {
	if name == "" {
		return DefaultModel
	}
	return anthropic.Model(name)
}
