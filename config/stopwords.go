package config

// spanishStopwords are common Spanish function words.
var spanishStopwords = []string{
	"con", "para", "por", "que", "del", "los", "las", "una", "uno", "este",
	"esta", "estos", "estas", "como", "más", "muy", "también", "pero", "sin",
	"sobre", "entre", "hasta", "desde", "hacia", "durante", "mediante",
	"puede", "pueden", "ser", "son", "tiene", "tienen", "hacer", "hace",
	"hacen", "decir", "dice", "ver", "vez", "año", "años", "día", "días",
	"caso", "casos", "parte", "partes", "forma", "formas", "manera", "maneras",
	"tipo", "tipos", "todo", "todos", "todas", "cada", "cual", "cuales",
	"cuando", "donde", "cualquier", "algunos", "algunas", "otro", "otros",
	"otra", "otras", "mismo", "misma", "mismos", "mismas", "solo", "sola",
	"solas", "tanto", "tanta", "tantos", "tantas", "menos", "mayor", "mayores",
	"menor", "menores", "mejor", "mejores", "peor", "peores", "nuevo", "nueva",
	"nuevos", "nuevas", "gran", "grande", "grandes", "pequeño", "pequeña",
	"pequeños", "pequeñas",
}

// englishStopwords are common English function words.
var englishStopwords = []string{
	"with", "that", "this", "the", "a", "an", "and", "or", "but", "for",
	"from", "have", "has", "had", "was", "were", "been", "being", "are", "is",
	"it", "its", "they", "them", "their", "there", "these", "those", "what",
	"which", "who", "when", "where", "why", "how", "can", "could", "should",
	"would", "will", "shall", "may", "might", "must", "about", "into", "onto",
	"upon", "within", "without", "through", "during", "before", "after",
	"above", "below", "under", "over", "between", "among", "while", "because",
	"although", "though", "however", "therefore", "thus", "hence", "more",
	"most", "less", "least", "other", "others", "another", "such", "same",
	"very", "much", "many", "some", "any", "all", "both", "each", "every",
	"none", "not", "no", "yes", "if", "then", "else", "also", "too", "either",
	"neither", "only", "just", "even", "still", "yet", "already", "again",
	"once", "twice", "here",
}

// domainStopwords are frequent in the idea notes but carry no meaning as links.
var domainStopwords = []string{
	"idea", "ideas",
}

// DefaultStopwords returns a fresh copy of the built-in bilingual stopword
// list plus the domain exclusions.
func DefaultStopwords() []string {
	words := make([]string, 0, len(spanishStopwords)+len(englishStopwords)+len(domainStopwords))
	words = append(words, spanishStopwords...)
	words = append(words, englishStopwords...)
	words = append(words, domainStopwords...)
	return words
}
