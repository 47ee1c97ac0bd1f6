package report

import "bujichang/spending/internal/models"

// set3 is the twelve-color qualitative Set3 scheme.
var set3 = []string{
	"#8DD3C7", "#FFFFB3", "#BEBADA", "#FB8072", "#80B1D3", "#FDB462",
	"#B3DE69", "#FCCDE5", "#D9D9D9", "#BC80BD", "#CCEBC5", "#FFED6F",
}

// Palette maps the values of one group to colors. It is immutable once
// built; renderers receive it as an argument.
type Palette struct {
	group  Group
	colors map[string]string
}

// NewPalette assigns Set3 hues to the group's vocabulary in canonical order.
func NewPalette(group Group) Palette {
	keys := group.Keys()
	colors := make(map[string]string, len(keys))
	for i, k := range keys {
		colors[k] = set3[i%len(set3)]
	}
	return Palette{group: group, colors: colors}
}

// NewTagPalette assigns Set3 hues to the tags that can occur under one value
// of group: the tags of the class for GroupClass, every tag otherwise.
func NewTagPalette(group Group, key string) Palette {
	var tags []models.Tag
	if group == GroupClass {
		tags = models.TagsOfClass(models.Class(key))
		if models.Class(key) == models.ClassOther {
			tags = append(tags, models.TagNone)
		}
	} else {
		tags = models.AllTags()
	}
	colors := make(map[string]string, len(tags))
	for i, t := range tags {
		colors[string(t)] = set3[i%len(set3)]
	}
	return Palette{group: group, colors: colors}
}

// Group returns the group the palette was built for.
func (p Palette) Group() Group {
	return p.group
}

// Color returns the hue of key, or "" for a value outside the vocabulary.
func (p Palette) Color(key string) string {
	return p.colors[key]
}

// Colors returns a copy of the whole map.
func (p Palette) Colors() map[string]string {
	out := make(map[string]string, len(p.colors))
	for k, v := range p.colors {
		out[k] = v
	}
	return out
}
