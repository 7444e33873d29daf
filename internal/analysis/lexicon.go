package analysis

// valences maps words to sentiment valence on the -4..4 scale the VADER
// lexicon popularized. This is a hand-trimmed subset biased toward vocabulary
// that actually occurs in metal lyrics.
var valences = map[string]float64{
	// negative
	"abandon": -1.9, "abyss": -1.6, "agony": -2.7, "anguish": -2.9,
	"annihilate": -2.6, "ash": -0.8, "ashes": -0.9, "bleak": -1.7,
	"bleed": -2.1, "blood": -1.3, "broken": -1.8, "burn": -1.4,
	"buried": -1.4, "chaos": -1.7, "cold": -0.9, "corpse": -2.3,
	"cruel": -2.4, "cry": -1.6, "curse": -2.0, "damned": -2.4,
	"dark": -1.0, "darkness": -1.2, "dead": -2.4, "death": -2.6,
	"decay": -1.9, "demon": -1.9, "despair": -2.9, "destroy": -2.5,
	"die": -2.7, "doom": -2.2, "dread": -2.4, "dying": -2.6,
	"empty": -1.4, "end": -0.6, "eternal": 0.0, "evil": -2.9,
	"fall": -0.8, "fallen": -1.2, "fear": -2.2, "fire": -0.6,
	"forsaken": -2.2, "funeral": -2.0, "grave": -1.8, "grief": -2.7,
	"hate": -2.7, "hatred": -3.0, "hell": -2.2, "hopeless": -2.6,
	"hurt": -2.2, "kill": -3.1, "lament": -1.8, "loss": -1.9,
	"lost": -1.5, "misery": -2.8, "mourn": -2.2, "pain": -2.5,
	"plague": -2.3, "poison": -2.2, "rage": -2.3, "rot": -2.1,
	"ruin": -2.1, "sacrifice": -1.1, "scream": -1.6, "shadow": -0.8,
	"sorrow": -2.5, "suffer": -2.6, "suffering": -2.7, "tear": -1.2,
	"tears": -1.4, "tomb": -1.7, "torment": -2.8, "tragedy": -2.6,
	"vain": -1.5, "void": -1.1, "war": -2.4, "weep": -2.0,
	"wither": -1.7, "wound": -2.1, "wrath": -2.5,

	// positive
	"alive": 1.7, "beauty": 2.4, "bless": 2.1, "blessed": 2.3,
	"bright": 1.6, "calm": 1.5, "dawn": 1.0, "dream": 1.3,
	"free": 1.8, "freedom": 2.3, "glory": 2.3, "grace": 2.0,
	"heaven": 2.1, "hope": 2.2, "joy": 2.8, "light": 1.2,
	"love": 3.2, "paradise": 2.8, "peace": 2.5, "pure": 1.7,
	"rise": 1.2, "salvation": 2.1, "shine": 1.7, "strength": 1.9,
	"triumph": 2.6, "victory": 2.6, "warm": 1.4, "wisdom": 2.0,
}
