package cipher

import "github.com/deploymenttheory/go-assetprobe/internal/types"

// IsPlain reports whether id is the publisher without obfuscation.
func IsPlain(id types.PublisherID) bool {
	return id == types.PublisherNormal
}

// IsUnityCN reports whether id is the UnityCN publisher.
func IsUnityCN(id types.PublisherID) bool {
	return id == types.PublisherUnityCN
}

// IsBlockCapable reports whether bundles from id may be block files holding several bundles.
func IsBlockCapable(id types.PublisherID) bool {
	switch id {
	case types.PublisherBH3, types.PublisherBH3Pre, types.PublisherSR,
		types.PublisherGIPack, types.PublisherTOT, types.PublisherArknightsEndfield:
		return true
	}
	return false
}

// IsGIGroup reports whether id belongs to the GI family of builds.
func IsGIGroup(id types.PublisherID) bool {
	switch id {
	case types.PublisherGI, types.PublisherGIPack, types.PublisherGICB1,
		types.PublisherGICB2, types.PublisherGICB3, types.PublisherGICB3Pre:
		return true
	}
	return false
}

// IsGISubGroup reports whether id is a GI build that uses blk containers.
func IsGISubGroup(id types.PublisherID) bool {
	switch id {
	case types.PublisherGI, types.PublisherGICB2, types.PublisherGICB3, types.PublisherGICB3Pre:
		return true
	}
	return false
}

// IsBH3Group reports whether id is a BH3 build sharing the BH3 block layout.
func IsBH3Group(id types.PublisherID) bool {
	return id == types.PublisherBH3 || id == types.PublisherBH3Pre
}

// IsSRGroup reports whether id is an SR build.
func IsSRGroup(id types.PublisherID) bool {
	return id == types.PublisherSRCB2 || id == types.PublisherSR
}

// IsMhyGroup reports whether id uses one of the mhy cipher families.
func IsMhyGroup(id types.PublisherID) bool {
	switch id {
	case types.PublisherGI, types.PublisherGIPack, types.PublisherGICB1, types.PublisherGICB2,
		types.PublisherGICB3, types.PublisherGICB3Pre, types.PublisherBH3, types.PublisherBH3Pre,
		types.PublisherBH3PrePre, types.PublisherSRCB2, types.PublisherSR, types.PublisherZZZCB1,
		types.PublisherTOT:
		return true
	}
	return false
}
