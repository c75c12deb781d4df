package recipe

import "github.com/goliatone/go-slug"

// SlugNormalizer exposes the go-slug normalizer used for filesystem and URL
// keys derived from recipe slugs.
type SlugNormalizer = slug.Normalizer

// DefaultSlugNormalizer returns the default slug normalizer.
func DefaultSlugNormalizer() SlugNormalizer {
	return slug.Default()
}

// NormalizeSlug runs a recipe slug through the go-slug rules so it is safe to
// use as a path segment. Slugs that already satisfy the rules are returned
// unchanged.
func NormalizeSlug(value string) (string, error) {
	if slug.IsValid(value) {
		return value, nil
	}
	return slug.Normalize(value)
}

// Key returns the normalized slug of the recipe, falling back to the raw
// Slug when normalization fails.
func (r Recipe) Key() string {
	raw := r.Slug()
	normalized, err := NormalizeSlug(raw)
	if err != nil || normalized == "" {
		return raw
	}
	return normalized
}
