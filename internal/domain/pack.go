package domain

// PackShape selects how a pack's slots are drawn
type PackShape string

const (
	// PackShapeStarter packs guarantee role coverage; indexed 0..StarterPackCount-1
	PackShapeStarter PackShape = "starter"
	// PackShapeBonus packs are pure tier lottery
	PackShapeBonus PackShape = "bonus"
)

// PackSize is the number of cards requested per pack. Assemblers may
// return fewer when the catalog runs dry; callers must accept short packs.
const PackSize = 5

// StarterPackCount is how many starter packs a user opens before
// switching to bonus packs.
const StarterPackCount = 3

// OpenedPack is the result of a pack assembly. Shortfall is true when
// fewer than the requested number of cards could be drawn.
type OpenedPack struct {
	Cards     []Card `json:"cards"`
	Shortfall bool   `json:"shortfall"`
}
