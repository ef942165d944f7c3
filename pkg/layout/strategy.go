package layout

import "github.com/goliatone/go-deckgen/pkg/content"

// Strategy names how a template keeps preview and export text sizes aligned.
type Strategy string

const (
	// StrategyAnalytic means each backend re-runs the fit with the shared
	// analytic measurer.
	StrategyAnalytic Strategy = "analytic"
	// StrategyShared means the resolver fits once and both backends draw the
	// stored size.
	StrategyShared Strategy = "shared"
)

// FitStrategies records the strategy chosen per template. Every template
// resolves fits once; renderers only read Text.FontSize.
var FitStrategies = map[content.Tag]Strategy{
	content.TagCover:         StrategyShared,
	content.TagTimeline:      StrategyShared,
	content.TagFlowChart:     StrategyShared,
	content.TagDataTable:     StrategyShared,
	content.TagPhotoGallery:  StrategyShared,
	content.TagMapTextList:   StrategyShared,
	content.TagMapTextCards:  StrategyShared,
	content.TagMapOverlay:    StrategyShared,
	content.TagThreeCircles:  StrategyShared,
	content.TagMultiCardGrid: StrategyShared,
}
