//go:build nvldebug

package novel

const debugAssertions = true
