// Copyright 2025 Acadsearch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"github.com/acadsearch/acadsearch/ai"
)

// Provider bundles an OpenAI-backed embedder and completer behind the
// ai.Provider interface.
type Provider struct {
	embedder  *Embedder
	completer *Completer
}

// NewProvider creates embedder and completer clients from a shared
// configuration.
//
// Returns ai.Provider interface to enforce abstraction.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	config.Normalize()

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	completer, err := newCompleter(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		embedder:  embedder,
		completer: completer,
	}, nil
}

// Embedder returns the embedding client.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Completer returns the completion client.
func (p *Provider) Completer() ai.Completer {
	return p.completer
}

// Close releases provider resources. The HTTP clients hold no persistent
// connections that need explicit shutdown.
func (p *Provider) Close() error {
	return nil
}
