package playground

import "slices"

// samples holds the built-in snippets, keyed by language.
var samples = map[string]string{
	"go": `package main

import "fmt"

// Greeter says hello.
type Greeter struct {
	Name string
}

func (g Greeter) Greet() string {
	return fmt.Sprintf("Hello, %s!", g.Name)
}

func main() {
	fmt.Println(Greeter{Name: "world"}.Greet())
}
`,
	"python": `from dataclasses import dataclass


@dataclass
class Greeter:
    name: str

    def greet(self) -> str:
        return f"Hello, {self.name}!"


if __name__ == "__main__":
    print(Greeter("world").greet())
`,
	"javascript": `class Greeter {
  constructor(name) {
    this.name = name;
  }

  greet() {
    return ` + "`Hello, ${this.name}!`" + `;
  }
}

console.log(new Greeter("world").greet());
`,
	"rust": `struct Greeter {
    name: String,
}

impl Greeter {
    fn greet(&self) -> String {
        format!("Hello, {}!", self.name)
    }
}

fn main() {
    let g = Greeter { name: "world".into() };
    println!("{}", g.greet());
}
`,
}

// sampleLanguages returns the sample languages in display order.
func sampleLanguages() []string {
	langs := make([]string, 0, len(samples))
	for lang := range samples {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// nextLanguage cycles through the sample languages.
func nextLanguage(current string) string {
	langs := sampleLanguages()
	i := slices.Index(langs, current)
	return langs[(i+1)%len(langs)]
}

// sampleFor returns the snippet for language, falling back to python.
func sampleFor(language string) string {
	if s, ok := samples[language]; ok {
		return s
	}
	return samples["python"]
}
