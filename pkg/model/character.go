package model

// Difficulty is the rough pick-up difficulty of a roster character.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Character is one entry of the fixed fighter roster.
type Character struct {
	Name       string
	Series     string
	Difficulty Difficulty
}

// FindCharacter returns the roster entry with the given name, or nil.
func FindCharacter(name string) *Character {
	for i := range Roster {
		if Roster[i].Name == name {
			return &Roster[i]
		}
	}
	return nil
}

// Roster is the full fighter roster the app is built around. It is fixed
// client-side data; the backend only tracks per-character likes.
var Roster = []Character{
	{Name: "Mario", Series: "Super Mario", Difficulty: DifficultyEasy},
	{Name: "Donkey Kong", Series: "Donkey Kong", Difficulty: DifficultyMedium},
	{Name: "Link", Series: "The Legend of Zelda", Difficulty: DifficultyMedium},
	{Name: "Samus", Series: "Metroid", Difficulty: DifficultyMedium},
	{Name: "Yoshi", Series: "Yoshi", Difficulty: DifficultyEasy},
	{Name: "Kirby", Series: "Kirby", Difficulty: DifficultyEasy},
	{Name: "Fox", Series: "Star Fox", Difficulty: DifficultyHard},
	{Name: "Pikachu", Series: "Pokémon", Difficulty: DifficultyEasy},
	{Name: "Luigi", Series: "Super Mario", Difficulty: DifficultyEasy},
	{Name: "Ness", Series: "EarthBound", Difficulty: DifficultyHard},
	{Name: "Captain Falcon", Series: "F-Zero", Difficulty: DifficultyMedium},
	{Name: "Jigglypuff", Series: "Pokémon", Difficulty: DifficultyMedium},
	{Name: "Peach", Series: "Super Mario", Difficulty: DifficultyMedium},
	{Name: "Bowser", Series: "Super Mario", Difficulty: DifficultyMedium},
	{Name: "Ice Climbers", Series: "Ice Climber", Difficulty: DifficultyHard},
	{Name: "Sheik", Series: "The Legend of Zelda", Difficulty: DifficultyHard},
	{Name: "Zelda", Series: "The Legend of Zelda", Difficulty: DifficultyMedium},
	{Name: "Dr. Mario", Series: "Super Mario", Difficulty: DifficultyEasy},
	{Name: "Pichu", Series: "Pokémon", Difficulty: DifficultyHard},
	{Name: "Falco", Series: "Star Fox", Difficulty: DifficultyHard},
	{Name: "Marth", Series: "Fire Emblem", Difficulty: DifficultyMedium},
	{Name: "Young Link", Series: "The Legend of Zelda", Difficulty: DifficultyMedium},
	{Name: "Ganondorf", Series: "The Legend of Zelda", Difficulty: DifficultyHard},
	{Name: "Mewtwo", Series: "Pokémon", Difficulty: DifficultyHard},
	{Name: "Roy", Series: "Fire Emblem", Difficulty: DifficultyMedium},
	{Name: "Mr. Game & Watch", Series: "Game & Watch", Difficulty: DifficultyHard},
	{Name: "Meta Knight", Series: "Kirby", Difficulty: DifficultyHard},
	{Name: "Pit", Series: "Kid Icarus", Difficulty: DifficultyMedium},
	{Name: "Zero Suit Samus", Series: "Metroid", Difficulty: DifficultyHard},
	{Name: "Wario", Series: "Wario", Difficulty: DifficultyMedium},
	{Name: "Snake", Series: "Metal Gear", Difficulty: DifficultyHard},
	{Name: "Ike", Series: "Fire Emblem", Difficulty: DifficultyMedium},
	{Name: "Pokémon Trainer", Series: "Pokémon", Difficulty: DifficultyHard},
	{Name: "Diddy Kong", Series: "Donkey Kong", Difficulty: DifficultyHard},
	{Name: "Sonic", Series: "Sonic the Hedgehog", Difficulty: DifficultyMedium},
	{Name: "King Dedede", Series: "Kirby", Difficulty: DifficultyMedium},
	{Name: "Olimar", Series: "Pikmin", Difficulty: DifficultyHard},
	{Name: "Lucario", Series: "Pokémon", Difficulty: DifficultyMedium},
	{Name: "R.O.B.", Series: "R.O.B.", Difficulty: DifficultyHard},
	{Name: "Toon Link", Series: "The Legend of Zelda", Difficulty: DifficultyMedium},
	{Name: "Wolf", Series: "Star Fox", Difficulty: DifficultyHard},
	{Name: "Villager", Series: "Animal Crossing", Difficulty: DifficultyHard},
	{Name: "Mega Man", Series: "Mega Man", Difficulty: DifficultyMedium},
	{Name: "Wii Fit Trainer", Series: "Wii Fit", Difficulty: DifficultyMedium},
	{Name: "Rosalina & Luma", Series: "Super Mario", Difficulty: DifficultyHard},
	{Name: "Little Mac", Series: "Punch-Out!!", Difficulty: DifficultyMedium},
	{Name: "Greninja", Series: "Pokémon", Difficulty: DifficultyHard},
	{Name: "Palutena", Series: "Kid Icarus", Difficulty: DifficultyMedium},
	{Name: "Pac-Man", Series: "Pac-Man", Difficulty: DifficultyHard},
	{Name: "Robin", Series: "Fire Emblem", Difficulty: DifficultyHard},
	{Name: "Shulk", Series: "Xenoblade Chronicles", Difficulty: DifficultyHard},
	{Name: "Bowser Jr.", Series: "Super Mario", Difficulty: DifficultyMedium},
	{Name: "Duck Hunt", Series: "Duck Hunt", Difficulty: DifficultyHard},
	{Name: "Ryu", Series: "Street Fighter", Difficulty: DifficultyHard},
	{Name: "Ken", Series: "Street Fighter", Difficulty: DifficultyHard},
	{Name: "Cloud", Series: "Final Fantasy", Difficulty: DifficultyMedium},
	{Name: "Corrin", Series: "Fire Emblem", Difficulty: DifficultyHard},
	{Name: "Bayonetta", Series: "Bayonetta", Difficulty: DifficultyHard},
	{Name: "Inkling", Series: "Splatoon", Difficulty: DifficultyMedium},
	{Name: "Ridley", Series: "Metroid", Difficulty: DifficultyMedium},
	{Name: "Simon", Series: "Castlevania", Difficulty: DifficultyMedium},
	{Name: "Richter", Series: "Castlevania", Difficulty: DifficultyMedium},
	{Name: "King K. Rool", Series: "Donkey Kong", Difficulty: DifficultyMedium},
	{Name: "Isabelle", Series: "Animal Crossing", Difficulty: DifficultyMedium},
	{Name: "Incineroar", Series: "Pokémon", Difficulty: DifficultyMedium},
	{Name: "Piranha Plant", Series: "Super Mario", Difficulty: DifficultyHard},
	{Name: "Joker", Series: "Persona", Difficulty: DifficultyHard},
	{Name: "Hero", Series: "Dragon Quest", Difficulty: DifficultyHard},
	{Name: "Banjo & Kazooie", Series: "Banjo-Kazooie", Difficulty: DifficultyMedium},
	{Name: "Terry", Series: "Fatal Fury", Difficulty: DifficultyHard},
	{Name: "Byleth", Series: "Fire Emblem", Difficulty: DifficultyMedium},
	{Name: "Min Min", Series: "ARMS", Difficulty: DifficultyHard},
	{Name: "Steve", Series: "Minecraft", Difficulty: DifficultyHard},
	{Name: "Sephiroth", Series: "Final Fantasy", Difficulty: DifficultyHard},
	{Name: "Pyra/Mythra", Series: "Xenoblade Chronicles", Difficulty: DifficultyHard},
	{Name: "Kazuya", Series: "Tekken", Difficulty: DifficultyHard},
	{Name: "Sora", Series: "Kingdom Hearts", Difficulty: DifficultyMedium},
}
