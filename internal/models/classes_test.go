package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagToClass(t *testing.T) {
	tests := []struct {
		tag  Tag
		want Class
	}{
		{TagRentStay, ClassRent},
		{TagFamily, ClassRent},
		{TagConsumable, ClassLife},
		{TagMarket, ClassCook},
		{TagDrink, ClassDineOut},
		{TagShow, ClassFun},
		{TagExercise, ClassHealth},
		{TagCar, ClassTransport},
		{TagNone, ClassOther},
		{TagUnset, ClassOther},
		{Tag("unknown"), ClassOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.want)+"/"+string(tt.tag), func(t *testing.T) {
			assert.Equal(t, tt.want, TagToClass(tt.tag))
		})
	}
}

func TestTagToClass_Partition(t *testing.T) {
	seen := make(map[Tag]Class)
	for _, class := range AllClasses() {
		for _, tag := range TagsOfClass(class) {
			_, dup := seen[tag]
			assert.False(t, dup, "tag %s in two classes", tag)
			seen[tag] = class
		}
	}

	for _, tag := range AllTags() {
		if tag == TagNone {
			continue
		}
		assert.Contains(t, seen, tag, "tag %s belongs to no class", tag)
		assert.NotEqual(t, ClassOther, TagToClass(tag), "real tag %s must not fall to other", tag)
	}

	assert.Empty(t, TagsOfClass(ClassOther))
}

func TestTagToClass_Idempotent(t *testing.T) {
	for _, tag := range AllTags() {
		first := TagToClass(tag)
		assert.Equal(t, first, TagToClass(tag))
	}
}
