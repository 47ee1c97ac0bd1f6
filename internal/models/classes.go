package models

// tagClasses is the static partition of tags into classes. Tags missing from
// the table, the sentinel included, belong to ClassOther.
var tagClasses = map[Tag]Class{
	TagRentStay: ClassRent,
	TagBill:     ClassRent,
	TagFamily:   ClassRent,

	TagFurnish:    ClassLife,
	TagConsumable: ClassLife,
	TagFlora:      ClassLife,
	TagWearing:    ClassLife,
	TagDress:      ClassLife,

	TagFarmerMarket: ClassCook,
	TagMarket:       ClassCook,
	TagBake:         ClassCook,

	TagEatOut: ClassDineOut,
	TagSnack:  ClassDineOut,
	TagDrink:  ClassDineOut,

	TagBook:   ClassFun,
	TagShow:   ClassFun,
	TagGame:   ClassFun,
	TagStream: ClassFun,
	TagFriend: ClassFun,

	TagSupplement: ClassHealth,
	TagExercise:   ClassHealth,

	TagCar:     ClassTransport,
	TagScooter: ClassTransport,
	TagCommute: ClassTransport,
	TagTaxi:    ClassTransport,
}

// TagToClass returns the class a tag belongs to. It is total: unknown tags,
// the empty tag and TagNone all map to ClassOther.
func TagToClass(tag Tag) Class {
	if c, ok := tagClasses[tag]; ok {
		return c
	}
	return ClassOther
}

// TagsOfClass returns the tags of a class in vocabulary order.
func TagsOfClass(class Class) []Tag {
	var tags []Tag
	for _, tag := range AllTags() {
		if TagToClass(tag) == class && tag != TagNone {
			tags = append(tags, tag)
		}
	}
	return tags
}
