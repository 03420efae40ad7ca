package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidex/internal/domain"
)

func TestClassifyExit(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid argument", domain.E(domain.CodeInvalidArgument, "list tools", "unknown tab x", domain.ErrInvalidArgument), exitUsage},
		{"unauthenticated", domain.E(domain.CodeUnauthenticated, "list bookmarks", "", domain.ErrUnauthenticated), exitUnauthenticated},
		{"network", domain.NetworkError("fetch tool list", 502, nil), exitUpstream},
		{"data shape", domain.DataShapeError("fetch tool list", "object payload"), exitUpstream},
		{"other", errors.New("boom"), exitFailure},
		{"passthrough", exitSilent(7), 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var exitErr exitError
			require.True(t, errors.As(classifyExit(tc.err), &exitErr))
			assert.Equal(t, tc.code, exitErr.code)
		})
	}
	assert.NoError(t, classifyExit(nil))
}

func TestListingFlags(t *testing.T) {
	args := &listArgs{}
	flags := listingFlags(args)
	require.NoError(t, flags.Parse([]string{"--tab", "image", "-k", "번역", "--keyword", "요약,코드", "--price", "free", "-q", "mid", "--featured", "2"}))

	assert.Equal(t, "image", args.tab)
	assert.Equal(t, []string{"번역", "요약", "코드"}, args.keywords)
	assert.Equal(t, "free", args.price)
	assert.Equal(t, "mid", args.query)
	assert.Equal(t, 2, args.featured)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"list", "tool", "image", "bookmarks", "login", "logout", "serve", "validate"} {
		assert.Contains(t, names, want)
	}
}
