package enums

type Industry string

const (
	IndustryAI             Industry = "AI"
	IndustryFintech        Industry = "Fintech"
	IndustryHealthtech     Industry = "Healthtech"
	IndustryEdtech         Industry = "Edtech"
	IndustrySaaS           Industry = "SaaS"
	IndustryEcommerce      Industry = "E-commerce"
	IndustrySustainability Industry = "Sustainability"
	IndustryD2C            Industry = "D2C"
	IndustryIoT            Industry = "IoT"
	IndustryOther          Industry = "Other"
)

func ParseIndustry(raw string) (Industry, bool) {
	switch Industry(raw) {
	case IndustryAI, IndustryFintech, IndustryHealthtech, IndustryEdtech,
		IndustrySaaS, IndustryEcommerce, IndustrySustainability,
		IndustryD2C, IndustryIoT, IndustryOther:
		return Industry(raw), true
	default:
		return "", false
	}
}

type Stage string

const (
	StageIdea    Stage = "Idea"
	StageMVP     Stage = "MVP"
	StageRevenue Stage = "Revenue"
	StageGrowth  Stage = "Growth"
	StageScale   Stage = "Scale"
)

func ParseStage(raw string) (Stage, bool) {
	switch Stage(raw) {
	case StageIdea, StageMVP, StageRevenue, StageGrowth, StageScale:
		return Stage(raw), true
	default:
		return "", false
	}
}

type FundingStage string

const (
	FundingPreSeed FundingStage = "Pre-Seed"
	FundingSeed    FundingStage = "Seed"
	FundingSeriesA FundingStage = "Series A"
	FundingSeriesB FundingStage = "Series B"
	FundingSeriesC FundingStage = "Series C"
	FundingGrowth  FundingStage = "Growth"
)

func ParseFundingStage(raw string) (FundingStage, bool) {
	switch FundingStage(raw) {
	case FundingPreSeed, FundingSeed, FundingSeriesA, FundingSeriesB,
		FundingSeriesC, FundingGrowth:
		return FundingStage(raw), true
	default:
		return "", false
	}
}

type Visibility string

const (
	VisibilityPublic         Visibility = "Public"
	VisibilityIncubatorsOnly Visibility = "Incubators Only"
	VisibilityPrivate        Visibility = "Private"
)

func ParseVisibility(raw string) (Visibility, bool) {
	switch Visibility(raw) {
	case VisibilityPublic, VisibilityIncubatorsOnly, VisibilityPrivate:
		return Visibility(raw), true
	default:
		return "", false
	}
}
