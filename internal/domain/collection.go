package domain

// Collection describes one tradition collection: its kind, the URL tag it
// is served under, and the key it appears under in combined responses.
// Listing, lookup, enhanced decoration, and chat-prompt construction all
// dispatch through this table instead of switching on type strings.
type Collection struct {
	Kind     Kind
	Tag      string // canonical URL tag
	Singular string // alias accepted on chat routes
	Key      string // key in combined {philosophies,...} responses
}

// Collections enumerates the three collections in their canonical order.
var Collections = []Collection{
	{Kind: KindPhilosophy, Tag: "philosophies", Singular: "philosophy", Key: "philosophies"},
	{Kind: KindReligion, Tag: "religions", Singular: "religion", Key: "religions"},
	{Kind: KindAstrology, Tag: "astrological-systems", Singular: "astrology", Key: "astrologicalSystems"},
}

// CollectionForTag resolves a URL tag (canonical or singular alias) to its
// collection. ok is false for unknown tags.
func CollectionForTag(tag string) (Collection, bool) {
	for _, c := range Collections {
		if c.Tag == tag || c.Singular == tag {
			return c, true
		}
	}
	return Collection{}, false
}
