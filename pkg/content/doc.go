// Package content defines the deck document: an ordered list of pages, each
// tagged with the template it uses and carrying that template's fixed content
// shape. Decks load from JSON or YAML.
package content
