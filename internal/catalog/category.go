package catalog

import (
	"fmt"
	"sort"
)

// Category is a taxonomy node attached to an event. Both its own name and
// its parent's name are localized, and a language selection is only valid
// when both maps carry it; a category therefore depends on its parent's
// translation completeness.
type Category struct {
	id         string
	code       string
	name       map[string]string
	parentID   string
	parentCode string
	parentName map[string]string
	language   string
}

func NewCategory(rec Record) (*Category, error) {
	c := &Category{
		id:         pickID(rec, "id"),
		code:       pickString(rec, "code"),
		name:       make(map[string]string),
		parentName: make(map[string]string),
	}
	if c.id == "" {
		return nil, fmt.Errorf("category record without id")
	}

	if parent := pickMap(rec, "parent"); parent != nil {
		c.parentID = pickID(parent, "id")
		c.parentCode = pickString(parent, "code")
		for language, v := range pickMap(parent, "translations") {
			if t, ok := v.(map[string]any); ok {
				c.parentName[language] = pickString(t, "name")
			}
		}
	}

	for language, v := range pickMap(rec, "translations") {
		if t, ok := v.(map[string]any); ok {
			c.name[language] = pickString(t, "name")
		}
	}

	// A category is only usable in a language both it and its parent are
	// translated to. Pick the smallest such language as the initial
	// selection; no common language (including the parentless case) fails
	// construction and the owning event drops the category.
	common := make([]string, 0, len(c.name))
	for language := range c.name {
		if _, ok := c.parentName[language]; ok {
			common = append(common, language)
		}
	}
	if len(common) == 0 {
		return nil, fmt.Errorf("category %s: no language with complete translations: %w", c.id, ErrLanguageNotFound)
	}
	sort.Strings(common)
	c.language = common[0]

	return c, nil
}

func (c *Category) HasLanguage(language string) bool {
	_, ok := c.name[language]
	return ok
}

func (c *Category) HasLanguageParent(language string) bool {
	_, ok := c.parentName[language]
	return ok
}

// SelectLanguage switches the active language. It fails unless the
// language exists in both the own-name and the parent-name map.
func (c *Category) SelectLanguage(language string) error {
	if !c.HasLanguage(language) || !c.HasLanguageParent(language) {
		return fmt.Errorf("category %s: language %s: %w", c.id, language, ErrLanguageNotFound)
	}
	c.language = language
	return nil
}

func (c *Category) Language() string   { return c.language }
func (c *Category) ID() string         { return c.id }
func (c *Category) Code() string       { return c.code }
func (c *Category) ParentID() string   { return c.parentID }
func (c *Category) ParentCode() string { return c.parentCode }

// Name returns the category name in the active language.
func (c *Category) Name() string { return c.name[c.language] }

// ParentName returns the parent category name in the active language.
func (c *Category) ParentName() string { return c.parentName[c.language] }
