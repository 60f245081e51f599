package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"Obat demam", "Obat demam"},
		{"<p>Obat <b>demam</b> &amp; nyeri</p>", "Obat demam & nyeri"},
		{"<p>Dosis:</p><ul><li>3x1</li></ul>", "Dosis: 3x1"},
		{"aman<script>alert(1)</script>", "aman"},
		{`<a href="javascript:x">link</a>`, "link"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PlainText(tc.in), "input %q", tc.in)
	}
}
