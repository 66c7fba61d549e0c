package parsing

// criticalVocabulary lists common tool and skill names, as they are written in job text.
// A term found verbatim is always ranked, even when tokenization would lose it (ci/cd).
// Bare "go" is excluded: it is too common as a verb to count as a verbatim hit.
var criticalVocabulary = []string{
	"python", "java", "javascript", "typescript", "golang", "rust", "c++", "c#",
	"ruby", "php", "scala", "kotlin", "swift", "sql", "nosql", "postgresql",
	"postgres", "mysql", "mongodb", "redis", "kafka", "rabbitmq", "spark", "hadoop",
	"aws", "amazon web services", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
	"terraform", "ansible", "jenkins", "git", "linux", "react", "angular", "vue",
	"node.js", "nodejs", "django", "flask", "spring", "graphql", "rest", "api",
	"microservices", "ci/cd", "machine learning", "tensorflow", "pytorch", "pandas",
	"tableau", "power bi", "excel", "salesforce", "figma", "jira", "agile", "scrum",
	"html", "css", "elasticsearch", "snowflake", "airflow", "etl", ".net", "grpc",
}

// criticalNormalized is the normalized form of every critical vocabulary entry
var criticalNormalized = func() map[string]bool {
	set := make(map[string]bool, len(criticalVocabulary))
	for _, v := range criticalVocabulary {
		set[NormalizeKeyword(v)] = true
	}
	return set
}()

// IsCriticalKeyword reports whether the keyword's normalized form is in the critical vocabulary
func IsCriticalKeyword(keyword string) bool {
	return criticalNormalized[NormalizeKeyword(keyword)]
}
