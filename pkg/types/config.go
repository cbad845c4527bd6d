package types

// StudyNotesConfig holds settings for the study-notes conversion.
type StudyNotesConfig struct {
	// InputDir holds the study note JSON documents.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives one <CODE>_StudyNotes.SFM file per book.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// KeyTermsConfig holds settings for the key-terms dictionary conversion.
// InputDir also feeds the resource map for both variants.
type KeyTermsConfig struct {
	InputDir   string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`
	OutputFile string `json:"output_file" yaml:"output_file" mapstructure:"output_file"`
}

// IndexConfig holds settings for the SQLite notes index.
type IndexConfig struct {
	// Path is the database file (default "usfm-notes.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default query limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings. It mirrors the keys read through viper.
type Config struct {
	StudyNotes StudyNotesConfig `json:"study_notes" yaml:"study_notes" mapstructure:"study_notes"`
	KeyTerms   KeyTermsConfig   `json:"key_terms" yaml:"key_terms" mapstructure:"key_terms"`
	Index      IndexConfig      `json:"index" yaml:"index" mapstructure:"index"`

	// InputPattern is the doublestar pattern selecting source files inside
	// an input directory (default "*.json").
	InputPattern string `json:"input_pattern" yaml:"input_pattern" mapstructure:"input_pattern"`

	// Manifest writes a YAML manifest next to each run's outputs.
	Manifest bool `json:"manifest" yaml:"manifest" mapstructure:"manifest"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// Default paths match the layout of the Biblica JSON export.
const (
	DefaultStudyNotesDir  = "./json BiblicaStudyNotes/json/"
	DefaultKeyTermsDir    = "./json BiblicaStudyNotesKeyTerms/json/"
	DefaultStudyNotesOut  = "./usfm_study_notes/"
	DefaultKeyTermsOut    = "./BiblicaKeyTerms.sfm"
	DefaultInputPattern   = "*.json"
	DefaultIndexPath      = "usfm-notes.db"
	DefaultIndexMaxResult = 20
)

// DefaultConfig returns a Config populated with the default paths.
func DefaultConfig() Config {
	return Config{
		StudyNotes: StudyNotesConfig{
			InputDir:  DefaultStudyNotesDir,
			OutputDir: DefaultStudyNotesOut,
		},
		KeyTerms: KeyTermsConfig{
			InputDir:   DefaultKeyTermsDir,
			OutputFile: DefaultKeyTermsOut,
		},
		Index: IndexConfig{
			Path:       DefaultIndexPath,
			MaxResults: DefaultIndexMaxResult,
		},
		InputPattern: DefaultInputPattern,
		LogLevel:     "info",
	}
}
