package lexicon

// defaultEntries is the built-in banned-term list. Terms are substrings, so
// inflected forms (fucking, shithead) match without separate entries.
var defaultEntries = []Entry{
	{Term: "damn", Severity: SeverityMild},
	{Term: "hell", Severity: SeverityMild},
	{Term: "crap", Severity: SeverityMild},
	{Term: "piss", Severity: SeverityMild},
	{Term: "ass", Severity: SeverityMild},

	{Term: "bitch", Severity: SeverityModerate},
	{Term: "bastard", Severity: SeverityModerate},
	{Term: "asshole", Severity: SeverityModerate},
	{Term: "dick", Severity: SeverityModerate},
	{Term: "cock", Severity: SeverityModerate},
	{Term: "whore", Severity: SeverityModerate},
	{Term: "slut", Severity: SeverityModerate},

	{Term: "fuck", Severity: SeveritySevere},
	{Term: "shit", Severity: SeveritySevere},
	{Term: "cunt", Severity: SeveritySevere},
	{Term: "motherfucker", Severity: SeveritySevere},

	{Term: "jesus", Severity: SeverityReligious},
	{Term: "christ", Severity: SeverityReligious},
	{Term: "goddamn", Severity: SeverityReligious},
	{Term: "goddammit", Severity: SeverityReligious},
	{Term: "god damn", Severity: SeverityReligious},
}

// defaultSafeWords are everyday words that contain a banned substring and
// must never be censored.
var defaultSafeWords = []string{
	"hello",
	"shell",
	"shelley",
	"hellenic",
	"class",
	"classic",
	"pass",
	"bass",
	"grass",
	"glass",
	"assassin",
	"cassette",
	"dickens",
	"dickinson",
	"cockpit",
	"peacock",
	"hancock",
	"hitchcock",
	"shiitake",
	"mishit",
	"scrap",
	"scrape",
	"craps",
	"pissarro",
}
