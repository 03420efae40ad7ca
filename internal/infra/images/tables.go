package images

// categoryPaths holds the directory of each asset kind, relative to the
// assets base URL.
type categoryPaths struct {
	logo          string
	serviceImage  string
	priceImage    string
	searchbarLogo string
}

func pathsFor(category string) categoryPaths {
	return categoryPaths{
		logo:          category + "/logo",
		serviceImage:  category + "/service",
		priceImage:    category + "/price",
		searchbarLogo: category + "/searchbar",
	}
}

var categoryTable = map[string]categoryPaths{
	"chatbot":      pathsFor("chatbot"),
	"image":        pathsFor("image"),
	"video":        pathsFor("video"),
	"audio":        pathsFor("audio"),
	"writing":      pathsFor("writing"),
	"coding":       pathsFor("coding"),
	"productivity": pathsFor("productivity"),
	"design":       pathsFor("design"),
	"search":       pathsFor("search"),
	"avatar":       pathsFor("avatar"),
	"3d":           pathsFor("3d"),
}

// serviceTable maps display names to asset filenames where the name alone
// does not produce a usable file name.
var serviceTable = map[string]string{
	"ChatGPT":            "chatgpt.png",
	"Claude":             "claude.png",
	"Gemini":             "gemini.png",
	"Perplexity":         "perplexity.png",
	"Microsoft Copilot":  "copilot.png",
	"뤼튼":                 "wrtn.png",
	"Clova X":            "clovax.png",
	"Midjourney":         "midjourney.png",
	"DALL·E 3":           "dalle3.png",
	"Stable Diffusion":   "stable_diffusion.png",
	"Leonardo.Ai":        "leonardo.png",
	"Adobe Firefly":      "firefly.png",
	"Runway":             "runway.png",
	"Pika":               "pika.png",
	"Sora":               "sora.png",
	"Synthesia":          "synthesia.png",
	"Suno":               "suno.png",
	"ElevenLabs":         "elevenlabs.png",
	"GitHub Copilot":     "github_copilot.png",
	"Cursor":             "cursor.png",
	"Notion AI":          "notion_ai.png",
	"Gamma":              "gamma.png",
	"Canva Magic Studio": "canva.png",
}

const placeholderFile = "default.png"
