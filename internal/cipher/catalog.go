package cipher

import "github.com/deploymenttheory/go-assetprobe/internal/types"

// Key table names referenced by the catalog. Values come from a Keyring.
const (
	KeyGIMhyShiftRow     = "GIMhyShiftRow"
	KeyGIMhyKey          = "GIMhyKey"
	KeyGIMhyMul          = "GIMhyMul"
	KeyGIExpansionKey    = "GIExpansionKey"
	KeyGISBox            = "GISBox"
	KeyGIInitVector      = "GIInitVector"
	KeyGIInitSeed        = "GIInitSeed"
	KeyPackExpansionKey  = "PackExpansionKey"
	KeyPackBlockKey      = "PackBlockKey"
	KeyGICBXExpansionKey = "GI_CBXExpansionKey"
	KeyGICBXSBox         = "GI_CBXSBox"
	KeyGICBXInitVector   = "GI_CBXInitVector"
	KeyGICBXInitSeed     = "GI_CBXInitSeed"
	KeyGICBXMhyShiftRow  = "GI_CBXMhyShiftRow"
	KeyGICBXMhyKey       = "GI_CBXMhyKey"
	KeyGICBXMhyMul       = "GI_CBXMhyMul"
	KeyBH3ExpansionKey   = "BH3ExpansionKey"
	KeyBH3SBox           = "BH3SBox"
	KeyBH3InitVector     = "BH3InitVector"
	KeyBH3BlockKey       = "BH3BlockKey"
	KeyMr0kExpansionKey  = "Mr0kExpansionKey"
	KeyMr0kInitVector    = "Mr0kInitVector"
	KeyMr0kBlockKey      = "Mr0kBlockKey"
	KeyTOTPostKey        = "ToTKey"
)

// entry describes one catalog record by key table name.
type entry struct {
	id   types.PublisherID
	kind Kind

	expansionKey string
	sBox         string
	initVector   string
	blockKey     string
	postKey      string
	initSeed     string

	shiftRow string
	roundKey string
	mul      string
}

func plain(id types.PublisherID) entry {
	return entry{id: id, kind: KindPlain}
}

func mr0kShared(id types.PublisherID) entry {
	return entry{id: id, kind: KindMr0k, expansionKey: KeyMr0kExpansionKey, initVector: KeyMr0kInitVector, blockKey: KeyMr0kBlockKey}
}

func packed(id types.PublisherID) entry {
	return entry{id: id, kind: KindMr0k, expansionKey: KeyPackExpansionKey, blockKey: KeyPackBlockKey}
}

func gicbx(id types.PublisherID) entry {
	return entry{id: id, kind: KindBlk, expansionKey: KeyGICBXExpansionKey, initVector: KeyGICBXInitVector, initSeed: KeyGICBXInitSeed}
}

// catalog lists the records in registration order. The SR_CB2, SR and ZZZ
// records are registered in a different order than the publisher identifiers
// are declared; records are keyed by their explicit id, so order only affects
// listing.
var catalog = []entry{
	plain(types.PublisherNormal),
	plain(types.PublisherUnityCN),
	{
		id: types.PublisherGI, kind: KindMhy,
		shiftRow: KeyGIMhyShiftRow, roundKey: KeyGIMhyKey, mul: KeyGIMhyMul,
		expansionKey: KeyGIExpansionKey, sBox: KeyGISBox, initVector: KeyGIInitVector, initSeed: KeyGIInitSeed,
	},
	packed(types.PublisherGIPack),
	{id: types.PublisherGICB1, kind: KindMr0k},
	gicbx(types.PublisherGICB2),
	gicbx(types.PublisherGICB3),
	{
		id: types.PublisherGICB3Pre, kind: KindMhy,
		shiftRow: KeyGICBXMhyShiftRow, roundKey: KeyGICBXMhyKey, mul: KeyGICBXMhyMul,
		expansionKey: KeyGICBXExpansionKey, sBox: KeyGICBXSBox, initVector: KeyGICBXInitVector, initSeed: KeyGICBXInitSeed,
	},
	{
		id: types.PublisherBH3, kind: KindMr0k,
		expansionKey: KeyBH3ExpansionKey, sBox: KeyBH3SBox, initVector: KeyBH3InitVector, blockKey: KeyBH3BlockKey,
	},
	packed(types.PublisherBH3Pre),
	packed(types.PublisherBH3PrePre),
	mr0kShared(types.PublisherSRCB2),
	mr0kShared(types.PublisherSR),
	mr0kShared(types.PublisherZZZCB1),
	{
		id: types.PublisherTOT, kind: KindMr0k,
		expansionKey: KeyMr0kExpansionKey, initVector: KeyMr0kInitVector, blockKey: KeyMr0kBlockKey, postKey: KeyTOTPostKey,
	},
	plain(types.PublisherNaraka),
	plain(types.PublisherEnsembleStars),
	plain(types.PublisherOPFP),
	plain(types.PublisherFakeHeader),
	plain(types.PublisherFantasyOfWind),
	plain(types.PublisherNikke),
	plain(types.PublisherHelixWaltz2),
	plain(types.PublisherNetEase),
	plain(types.PublisherAnchorPanic),
	plain(types.PublisherDreamscapeAlbireo),
	plain(types.PublisherImaginaryFest),
	plain(types.PublisherAliceGearAegis),
	plain(types.PublisherProjectSekai),
	plain(types.PublisherCodenameJump),
	plain(types.PublisherGirlsFrontline),
	plain(types.PublisherReverse1999),
	plain(types.PublisherArknightsEndfield),
	plain(types.PublisherJJKPhantomParade),
	plain(types.PublisherMuvLuvDimensions),
	plain(types.PublisherPartyAnimals),
	plain(types.PublisherLoveAndDeepspace),
	plain(types.PublisherSchoolGirlStrikers),
	plain(types.PublisherExAstris),
	plain(types.PublisherPerpetualNovelty),
}
