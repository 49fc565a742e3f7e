// internal/catalog/defaults.go
package catalog

// DefaultModels returns the builtin starter catalog: small coder-friendly
// models that run on modest hardware. It seeds the snapshot on machines that
// have never reached the registry.
func DefaultModels() []Model {
	return []Model{
		{Name: "tinyllama:1.1b", Description: "TinyLlama 1.1B, a fast small model"},
		{Name: "codellama:7b", Description: "CodeLlama 7B by Meta, tuned for coding"},
		{Name: "wizardcoder:7b-python", Description: "WizardCoder 7B, Python focused"},
		{Name: "deepseek-coder:6.7b", Description: "DeepSeek Coder 6.7B"},
		{Name: "codegemma:2b", Description: "CodeGemma 2B by Google"},
		{Name: "phi:2.7b", Description: "Microsoft Phi-2 2.7B"},
		{Name: "stablelm-zephyr:3b", Description: "StableLM Zephyr 3B"},
		{Name: "mistral:7b", Description: "Mistral 7B"},
		{Name: "qwen:7b", Description: "Qwen 7B"},
		{Name: "gemma:7b", Description: "Gemma 7B"},
		{Name: "gemma:2b", Description: "Gemma 2B"},
	}
}
