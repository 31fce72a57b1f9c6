package testutil

import "context"

// StubPromptFetcher satisfies the game service's prompt provider dependency
// without any network. Set Err to simulate an unavailable provider.
type StubPromptFetcher struct {
	URL string
	Err error
}

func (s StubPromptFetcher) FetchPromptURL(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.URL == "" {
		return "https://img.example/default-prompt.jpg", nil
	}
	return s.URL, nil
}
