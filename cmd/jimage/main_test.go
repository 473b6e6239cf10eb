package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagertha-vm/lagertha-image/internal/testutil"
)

func writeImage(t *testing.T) string {
	t.Helper()
	return testutil.NewBuilder().
		Add("/java.base/java/lang/Object.class", []byte("object bytes")).
		Add("/java.base/java/lang/String.class", []byte("string bytes")).
		Add("/java.sql/java/sql/Driver.class", []byte("driver")).
		AddCompressed("/java.base/java/lang/Packed.class", []byte("zz"), 2).
		WriteFile(t)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"jimage"}, args...))
	return stdout.String(), err
}

func TestHeader(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--file", writeImage(t), "header")
	require.NoError(t, err)
	assert.Contains(t, out, "magic:          0xCAFEDADA")
	assert.Contains(t, out, "version:        1.0")
	assert.Contains(t, out, "resources:      4")
	assert.Contains(t, out, "redirect:       28")
}

func TestLookup(t *testing.T) {
	t.Parallel()

	path := writeImage(t)
	out, err := run(t, "-f", path, "lookup", "java/lang/Object", "java/lang/Packed", "java/lang/Object")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "java/lang/Object\t12\t"+digest.FromBytes([]byte("object bytes")).String(), lines[0])
	assert.Equal(t, "java/lang/Packed\tcompressed", lines[1])
	assert.Equal(t, lines[0], lines[2])

	out, err = run(t, "-f", path, "lookup", "java/lang/Nope")
	require.Error(t, err)
	assert.Contains(t, out, "java/lang/Nope\tnot found")

	_, err = run(t, "-f", path, "lookup")
	require.Error(t, err)
}

func TestCat(t *testing.T) {
	t.Parallel()

	path := writeImage(t)
	out, err := run(t, "-f", path, "cat", "java/lang/String")
	require.NoError(t, err)
	assert.Equal(t, "string bytes", out)

	out, err = run(t, "-f", path, "--module", "java.sql", "cat", "java/sql/Driver")
	require.NoError(t, err)
	assert.Equal(t, "driver", out)

	_, err = run(t, "-f", path, "cat", "java/sql/Driver")
	require.ErrorContains(t, err, "not found")
}

func TestResource(t *testing.T) {
	t.Parallel()

	out, err := run(t, "-f", writeImage(t), "resource", "/java.base/java/lang/Object.class")
	require.NoError(t, err)
	assert.Contains(t, out, "name:         /java.base/java/lang/Object.class")
	assert.Contains(t, out, "uncompressed: 12")
	assert.Contains(t, out, "digest:       "+digest.FromBytes([]byte("object bytes")).String())
}

func TestVerify(t *testing.T) {
	t.Parallel()

	path := writeImage(t)
	out, err := run(t, "-f", path, "verify", "-j", "2", "java/lang/Object", "java/lang/String")
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 classes\n", out)

	out, err = run(t, "-f", path, "verify", "java/lang/Object", "b/B", "a/A")
	require.ErrorContains(t, err, "2 of 3 classes missing")
	assert.Equal(t, "missing: a/A\nmissing: b/B\n", out)

	_, err = run(t, "-f", path, "verify", "java/lang/Packed")
	require.ErrorContains(t, err, "compressed")
}

func TestBadLogLevel(t *testing.T) {
	t.Parallel()

	_, err := run(t, "-f", writeImage(t), "--log-level", "loud", "header")
	require.ErrorContains(t, err, "log level")
}
