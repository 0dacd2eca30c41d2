package ai

// TagTaxonomy is the fixed, closed set of allowed tag values. The
// summarizer drops any model-produced tag that is not a member; it never
// substitutes or invents tags.
var TagTaxonomy = []string{
	"ai-ml",
	"web-dev",
	"backend",
	"frontend",
	"devops",
	"security",
	"data",
	"mobile",
	"open-source",
	"product",
	"design",
	"career",
	"startup",
	"research",
	"tutorial",
	"tool",
	"opinion",
	"news",
}

var taxonomySet = func() map[string]bool {
	set := make(map[string]bool, len(TagTaxonomy))
	for _, tag := range TagTaxonomy {
		set[tag] = true
	}
	return set
}()

// ValidTags filters a tag list to taxonomy members, preserving order.
func ValidTags(tags []string) []string {
	valid := make([]string, 0, len(tags))
	for _, tag := range tags {
		if taxonomySet[tag] {
			valid = append(valid, tag)
		}
	}
	return valid
}
