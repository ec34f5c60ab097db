package config

const (
	// DefaultConfigFile is the config file looked up in the working directory.
	DefaultConfigFile = "ocrenv.yaml"

	// DefaultManifest is the dependency manifest consumed by the final step.
	DefaultManifest = "requirements.txt"

	// DefaultLanguage is the OCR language data installed by default.
	DefaultLanguage = "por"

	// EnginePackage is the system package providing the OCR engine.
	EnginePackage = "tesseract-ocr"

	// LanguagePackPrefix prefixes per-language data packages,
	// e.g. tesseract-ocr-por.
	LanguagePackPrefix = "tesseract-ocr-"

	// DefaultAptBinary is the system package manager invoked for steps 1-2.
	DefaultAptBinary = "apt-get"

	// DefaultPythonBinary runs pip as a module for steps 3-4.
	DefaultPythonBinary = "python3"
)
