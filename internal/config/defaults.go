package config

import "time"

const (
	// DefaultConfigDirName is the directory under the user config dir
	DefaultConfigDirName = "kitty"
	// DefaultConfigFile is the language configuration file name
	DefaultConfigFile = "kitty.yml"
	// DefaultTestDir holds the .in/.ans pairs of a solution
	DefaultTestDir = "test"
	// DefaultDebugDir holds the generator programs of a solution
	DefaultDebugDir = "debug"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory, relative to the solution
	DefaultOutputJSONDir = ".kitty"
	// DefaultDebugIterations is how many generated cases debug mode runs
	DefaultDebugIterations = 100
	// DefaultWatchDebounce collapses the write events of one save
	DefaultWatchDebounce = 100 * time.Millisecond
)

// DefaultLanguages is used when no kitty.yml exists
var DefaultLanguages = []LanguageConfig{
	{Name: "C", FileExtension: "c", CompileCommand: `gcc -O2 -o "{exe}" "{src}"`, RunCommand: `"{exe}"`},
	{Name: "C++", FileExtension: "cpp", CompileCommand: `g++ -O2 -std=c++17 -o "{exe}" "{src}"`, RunCommand: `"{exe}"`},
	{Name: "Go", FileExtension: "go", CompileCommand: `go build -o "{exe}" "{src}"`, RunCommand: `"{exe}"`},
	{Name: "Java", FileExtension: "java", CompileCommand: `javac "{src}"`, RunCommand: `java -cp "{dir}" "{stem}"`},
	{Name: "Python 3", FileExtension: "py", RunCommand: `python3 "{src}"`},
	{Name: "Rust", FileExtension: "rs", CompileCommand: `rustc -O -o "{exe}" "{src}"`, RunCommand: `"{exe}"`},
}
