package models

// HomePage, public ana sayfanın tek istekte ihtiyaç duyduğu veriler.
type HomePage struct {
	Hero     HeroShowcase      `json:"hero"`
	Featured []*MenuItem       `json:"featured"`
	Branches []*Branch         `json:"branches"`
	Settings map[string]string `json:"settings"`
}
