package models

import "strings"

// Tag is the finest-grained spending category. The zero value means the
// source did not provide one.
type Tag string

const (
	TagUnset Tag = ""

	TagRentStay Tag = "rent-stay"
	TagBill     Tag = "bill"
	TagFamily   Tag = "family"

	TagFurnish    Tag = "furnish"
	TagConsumable Tag = "consumable"
	TagFlora      Tag = "flora"
	TagWearing    Tag = "wearing"
	TagDress      Tag = "dress"

	TagFarmerMarket Tag = "farmer-market"
	TagMarket       Tag = "market"
	TagBake         Tag = "bake"

	TagEatOut Tag = "eat-out"
	TagSnack  Tag = "snack"
	TagDrink  Tag = "drink"

	TagBook   Tag = "book"
	TagShow   Tag = "show"
	TagGame   Tag = "game"
	TagStream Tag = "stream"
	TagFriend Tag = "friend"

	TagSupplement Tag = "supplement"
	TagExercise   Tag = "exercise"

	TagCar     Tag = "car"
	TagScooter Tag = "scooter"
	TagCommute Tag = "commute"
	TagTaxi    Tag = "taxi"

	// TagNone is the sentinel for rows no rule could classify.
	TagNone Tag = "no-tag"
)

var tagLabels = []struct {
	tag   Tag
	label string
}{
	{TagRentStay, "蹛"}, {TagBill, "水電"}, {TagFamily, "厝內"},
	{TagFurnish, "家具"}, {TagConsumable, "度日"}, {TagFlora, "植物"}, {TagWearing, "穿插"}, {TagDress, "梳妝"},
	{TagFarmerMarket, "菜市"}, {TagMarket, "超市"}, {TagBake, "做麭"},
	{TagEatOut, "好料"}, {TagSnack, "四秀"}, {TagDrink, "食涼"},
	{TagBook, "冊"}, {TagShow, "票"}, {TagGame, "麻雀"}, {TagStream, "網影"}, {TagFriend, "順紲"},
	{TagSupplement, "保健"}, {TagExercise, "運動"},
	{TagCar, "駛車"}, {TagScooter, "騎車"}, {TagCommute, "通勤"}, {TagTaxi, "坐車"},
	{TagNone, "無標"},
}

// AllTags returns the full tag vocabulary, sentinel last.
func AllTags() []Tag {
	out := make([]Tag, 0, len(tagLabels))
	for _, tl := range tagLabels {
		out = append(out, tl.tag)
	}
	return out
}

// Label returns the ledger label of the tag.
func (t Tag) Label() string {
	for _, tl := range tagLabels {
		if tl.tag == t {
			return tl.label
		}
	}
	return string(t)
}

// ParseTag maps a slug or a ledger label to a Tag. Blank input yields
// TagUnset. Unknown input yields TagNone and false.
func ParseTag(s string) (Tag, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TagUnset, true
	}
	for _, tl := range tagLabels {
		if string(tl.tag) == s || tl.label == s {
			return tl.tag, true
		}
	}
	return TagNone, false
}

// Class is the coarse category derived from a Tag.
type Class string

const (
	ClassRent      Class = "rent"
	ClassLife      Class = "life"
	ClassCook      Class = "cook"
	ClassDineOut   Class = "dine-out"
	ClassFun       Class = "fun"
	ClassHealth    Class = "health"
	ClassTransport Class = "transport"
	ClassOther     Class = "other"
)

var classLabels = map[Class]string{
	ClassRent:      "租",
	ClassLife:      "生活",
	ClassCook:      "煮食",
	ClassDineOut:   "食外",
	ClassFun:       "消遣",
	ClassHealth:    "健康",
	ClassTransport: "交通",
	ClassOther:     "無類",
}

// AllClasses returns the classes in display order, sentinel last.
func AllClasses() []Class {
	return []Class{ClassRent, ClassLife, ClassCook, ClassDineOut, ClassFun, ClassHealth, ClassTransport, ClassOther}
}

// Label returns the ledger label of the class.
func (c Class) Label() string {
	if l, ok := classLabels[c]; ok {
		return l
	}
	return string(c)
}

// PaymentMethod is how a transaction was paid.
type PaymentMethod string

const (
	PaymentUnset   PaymentMethod = ""
	PaymentCard    PaymentMethod = "card"
	PaymentDigital PaymentMethod = "digital-wallet"
	PaymentCash    PaymentMethod = "cash"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCard:    "卡",
	PaymentDigital: "數碼",
	PaymentCash:    "現金",
}

// AllPaymentMethods returns the payment vocabulary in display order.
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentDigital, PaymentCash}
}

// Label returns the ledger label of the payment method.
func (p PaymentMethod) Label() string {
	if l, ok := paymentLabels[p]; ok {
		return l
	}
	return string(p)
}

// ParsePaymentMethod maps a slug or ledger label to a PaymentMethod. Blank
// input yields PaymentUnset; unknown input yields PaymentUnset and false.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PaymentUnset, true
	}
	for p, label := range paymentLabels {
		if string(p) == s || label == s {
			return p, true
		}
	}
	return PaymentUnset, false
}

// Frequency describes how often a kind of spending recurs.
type Frequency string

const (
	FrequencyUnset        Frequency = ""
	FrequencyMonthly      Frequency = "monthly"
	FrequencyBiMonthly    Frequency = "bi-monthly"
	FrequencyTrip         Frequency = "trip"
	FrequencyAnnual       Frequency = "annual"
	FrequencyTopUp        Frequency = "top-up"
	FrequencySubscription Frequency = "subscription"
	// FrequencyOnce is the sentinel for rows without a recurrence.
	FrequencyOnce Frequency = "one-off"
)

var frequencyLabels = map[Frequency]string{
	FrequencyMonthly:      "每月",
	FrequencyBiMonthly:    "隔月",
	FrequencyTrip:         "𨑨迌",
	FrequencyAnnual:       "過年",
	FrequencyTopUp:        "入錢",
	FrequencySubscription: "訂閱",
	FrequencyOnce:         "一擺",
}

// AllFrequencies returns the frequency vocabulary in display order.
func AllFrequencies() []Frequency {
	return []Frequency{
		FrequencyMonthly, FrequencyBiMonthly, FrequencyTrip, FrequencyAnnual,
		FrequencyTopUp, FrequencySubscription, FrequencyOnce,
	}
}

// Label returns the ledger label of the frequency.
func (f Frequency) Label() string {
	if l, ok := frequencyLabels[f]; ok {
		return l
	}
	return string(f)
}

// ParseFrequency maps a slug or ledger label to a Frequency. Blank input
// yields FrequencyUnset; unknown input yields FrequencyOnce and false.
func ParseFrequency(s string) (Frequency, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FrequencyUnset, true
	}
	for f, label := range frequencyLabels {
		if string(f) == s || label == s {
			return f, true
		}
	}
	return FrequencyOnce, false
}
