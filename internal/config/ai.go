package config

type AI string

const (
	AIOpenAI AI = "openai"
	AIGemini AI = "gemini"
)

type VCS string

const (
	VCSGitHub VCS = "github"
	VCSGitLab VCS = "gitlab"
)

const (
	LangEN = "en"
	LangES = "es"
)

func SupportedAIs() []AI {
	return []AI{
		AIOpenAI,
		AIGemini,
	}
}

func SupportedVCS() []VCS {
	return []VCS{
		VCSGitHub,
		VCSGitLab,
	}
}

func SupportedLanguages() []string {
	return []string{LangEN, LangES}
}

func isSupportedAI(ai AI) bool {
	for _, s := range SupportedAIs() {
		if s == ai {
			return true
		}
	}
	return false
}

func isSupportedVCS(v VCS) bool {
	for _, s := range SupportedVCS() {
		if s == v {
			return true
		}
	}
	return false
}
