package types

import (
	"errors"
	"fmt"
)

// Publishers
// A publisher identifier names the title or build whose obfuscation scheme applies to a stream.

// PublisherID identifies a supported title or build.
type PublisherID uint8

const (
	// PublisherNormal means the stream carries no publisher obfuscation.
	PublisherNormal PublisherID = iota
	PublisherUnityCN
	PublisherGI
	PublisherGIPack
	PublisherGICB1
	PublisherGICB2
	PublisherGICB3
	PublisherGICB3Pre
	PublisherBH3
	PublisherBH3Pre
	PublisherBH3PrePre
	PublisherZZZCB1
	PublisherSRCB2
	PublisherSR
	PublisherTOT
	PublisherNaraka
	PublisherEnsembleStars
	PublisherOPFP
	PublisherFakeHeader
	PublisherFantasyOfWind
	PublisherNikke
	PublisherHelixWaltz2
	PublisherNetEase
	PublisherAnchorPanic
	PublisherDreamscapeAlbireo
	PublisherImaginaryFest
	PublisherAliceGearAegis
	PublisherProjectSekai
	PublisherCodenameJump
	PublisherGirlsFrontline
	PublisherReverse1999
	PublisherArknightsEndfield
	PublisherJJKPhantomParade
	PublisherMuvLuvDimensions
	PublisherPartyAnimals
	PublisherLoveAndDeepspace
	PublisherSchoolGirlStrikers
	PublisherExAstris
	PublisherPerpetualNovelty

	publisherCount
)

// PublisherCount is the cardinality of the closed publisher set.
const PublisherCount = int(publisherCount)

// ErrUnsupportedPublisher is returned for identifiers outside the closed set.
var ErrUnsupportedPublisher = errors.New("unsupported publisher")

type publisherInfo struct {
	ident   string
	display string
}

var publishers = [publisherCount]publisherInfo{
	PublisherNormal:             {"Normal", "正常"},
	PublisherUnityCN:            {"UnityCN", "UnityCN"},
	PublisherGI:                 {"GI", "原神"},
	PublisherGIPack:             {"GIPack", "GI_Pack"},
	PublisherGICB1:              {"GICB1", "GI_CB1"},
	PublisherGICB2:              {"GICB2", "GI_CB2"},
	PublisherGICB3:              {"GICB3", "GI_CB3"},
	PublisherGICB3Pre:           {"GICB3Pre", "GI_CB3Pre"},
	PublisherBH3:                {"BH3", "崩坏三"},
	PublisherBH3Pre:             {"BH3Pre", "BH3Pre"},
	PublisherBH3PrePre:          {"BH3PrePre", "BH3PrePre"},
	PublisherZZZCB1:             {"ZZZCB1", "绝区零"},
	PublisherSRCB2:              {"SRCB2", "SR_CB2"},
	PublisherSR:                 {"SR", "崩坏星穹铁道"},
	PublisherTOT:                {"TOT", "未定事件簿"},
	PublisherNaraka:             {"Naraka", "永劫无间"},
	PublisherEnsembleStars:      {"EnsembleStars", "偶像梦幻祭2"},
	PublisherOPFP:               {"OPFP", "航海王热血航线"},
	PublisherFakeHeader:         {"FakeHeader", "FakeHeader"},
	PublisherFantasyOfWind:      {"FantasyOfWind", "风之幻想"},
	PublisherNikke:              {"Nikke", "胜利女神妮姬"},
	PublisherHelixWaltz2:        {"HelixWaltz2", "螺旋圆舞曲2蔷薇战争"},
	PublisherNetEase:            {"NetEase", "NetEase"},
	PublisherAnchorPanic:        {"AnchorPanic", "锚点降临"},
	PublisherDreamscapeAlbireo:  {"DreamscapeAlbireo", "梦间集天鹅座"},
	PublisherImaginaryFest:      {"ImaginaryFest", "魔法禁书目录幻想收束"},
	PublisherAliceGearAegis:     {"AliceGearAegis", "机甲爱丽丝"},
	PublisherProjectSekai:       {"ProjectSekai", "世界计划多彩舞台"},
	PublisherCodenameJump:       {"CodenameJump", "jump群星集结"},
	PublisherGirlsFrontline:     {"GirlsFrontline", "少女前线"},
	PublisherReverse1999:        {"Reverse1999", "重返未来1999"},
	PublisherArknightsEndfield:  {"ArknightsEndfield", "明日方舟"},
	PublisherJJKPhantomParade:   {"JJKPhantomParade", "咒术回战幻影夜行"},
	PublisherMuvLuvDimensions:   {"MuvLuvDimensions", "MuvLuv维度"},
	PublisherPartyAnimals:       {"PartyAnimals", "动物派对"},
	PublisherLoveAndDeepspace:   {"LoveAndDeepspace", "恋与深空"},
	PublisherSchoolGirlStrikers: {"SchoolGirlStrikers", "学园少女突袭者"},
	PublisherExAstris:           {"ExAstris", "来自星辰"},
	PublisherPerpetualNovelty:   {"PerpetualNovelty", "物华弥新"},
}

// IsValid reports whether the identifier belongs to the closed publisher set.
func (p PublisherID) IsValid() bool {
	return p < publisherCount
}

// Ident returns the ASCII identifier of the publisher.
func (p PublisherID) Ident() string {
	if !p.IsValid() {
		return fmt.Sprintf("Publisher(%d)", uint8(p))
	}
	return publishers[p].ident
}

// DisplayName returns the catalog display name of the publisher.
func (p PublisherID) DisplayName() string {
	if !p.IsValid() {
		return p.Ident()
	}
	return publishers[p].display
}

// String returns the display name.
func (p PublisherID) String() string {
	return p.DisplayName()
}

// PublisherIDFromInt converts an external integer to a publisher identifier.
func PublisherIDFromInt(v int) (PublisherID, error) {
	if v < 0 || v >= PublisherCount {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedPublisher, v)
	}
	return PublisherID(v), nil
}

// AllPublishers returns every publisher identifier in declaration order.
func AllPublishers() []PublisherID {
	ids := make([]PublisherID, PublisherCount)
	for i := range ids {
		ids[i] = PublisherID(i)
	}
	return ids
}
