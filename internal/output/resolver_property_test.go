//go:build property
// +build property

package output

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/afero"
)

// TestResolverProperties verifies that WriteNew never reuses an existing
// output path, whatever is already in the directory.
func TestResolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("WriteNew never overwrites", prop.ForAll(
		func(taken []int, writes int) bool {
			fs := afero.NewMemMapFs()
			r := NewResolver(fs, 0)
			existing := map[string]bool{}
			for _, n := range taken {
				name := VariantName("icon.svg", "", n)
				existing[name] = true
				if err := afero.WriteFile(fs, filepath.Join("/out", name), []byte("old"), 0o644); err != nil {
					return false
				}
			}

			seen := map[string]bool{}
			for i := 0; i < writes; i++ {
				name, err := r.WriteNew("/out", "icon.svg", "", []byte(fmt.Sprint(i)))
				if err != nil || existing[name] || seen[name] {
					return false
				}
				seen[name] = true
			}

			for name := range existing {
				data, err := afero.ReadFile(fs, filepath.Join("/out", name))
				if err != nil || string(data) != "old" {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 12)),
		gen.IntRange(1, 8),
	))

	properties.Property("Resolve picks the lowest free variant", prop.ForAll(
		func(taken []int) bool {
			fs := afero.NewMemMapFs()
			used := map[int]bool{}
			for _, n := range taken {
				used[n] = true
				_ = afero.WriteFile(fs, filepath.Join("/out", VariantName("a.svg", "p-", n)), nil, 0o644)
			}
			lowest := 0
			for used[lowest] {
				lowest++
			}

			_, name, err := NewResolver(fs, 0).Resolve("/out", "a.svg", "p-")
			return err == nil && name == VariantName("a.svg", "p-", lowest)
		},
		gen.SliceOf(gen.IntRange(0, 10)),
	))

	properties.TestingRun(t)
}
