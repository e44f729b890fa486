package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGoogleSearcher_MissingCredentials(t *testing.T) {
	_, err := NewGoogleSearcher(context.Background(), "", "cx")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewGoogleSearcher(context.Background(), "key", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCleanSnippet_StripsMarkup(t *testing.T) {
	got := CleanSnippet("<b>Stripe</b> interview process &amp; culture")
	assert.Equal(t, "Stripe interview process & culture", got)
}

func TestCleanSnippet_CollapsesWhitespace(t *testing.T) {
	got := CleanSnippet("a  <br>  behavioral\n\ninterview")
	assert.Equal(t, "a behavioral interview", got)
}

func TestCleanSnippet_PlainTextUnchanged(t *testing.T) {
	got := CleanSnippet("no markup here")
	assert.Equal(t, "no markup here", got)
}
