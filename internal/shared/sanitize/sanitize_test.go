package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/HIMU202508/TicketingSystem/internal/shared/errors"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain text", in: "won't boot", want: "won't boot"},
		{name: "trims whitespace", in: "  fan noise \n", want: "fan noise"},
		{name: "keeps ampersand", in: "keyboard & mouse", want: "keyboard & mouse"},
		{name: "keeps comparison operators", in: "fan ratio a < b and c > d", want: "fan ratio a < b and c > d"},
		{name: "keeps arrow", in: "battery 80%->20% in 1h", want: "battery 80%->20% in 1h"},
		{name: "keeps escaped entities", in: "&lt;b&gt; printed on label", want: "&lt;b&gt; printed on label"},
		{name: "keeps crlf line breaks", in: "line one\r\nline < two", want: "line one\r\nline < two"},
		{name: "empty", in: "", want: ""},
		{name: "rejects bold tag", in: "<b>screen</b> cracked", wantErr: true},
		{name: "rejects script", in: "ok<script>alert(1)</script>", wantErr: true},
		{name: "rejects tag-like span", in: "fan ratio a<b and c>d", wantErr: true},
		{name: "rejects comment", in: "a<!-- hidden -->b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text("remarks", tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidationError(err))
				assert.Contains(t, err.Error(), "remarks")
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContainsMarkup(t *testing.T) {
	assert.False(t, ContainsMarkup("5 > 3"))
	assert.False(t, ContainsMarkup("no brackets at all"))
	assert.True(t, ContainsMarkup("<i></i>"))
	assert.True(t, ContainsMarkup(`<img src=x onerror="alert(1)">`))
}

func TestUpper(t *testing.T) {
	assert.Equal(t, "MAIN OFFICE", Upper(" main office "))
	assert.Equal(t, "STRASSE 5", Upper("straße 5"))
	assert.Equal(t, "A<B", Upper("a<b"))
}
