package retrieval

// semanticMap is a fixed term-association table used to boost recall
// without embeddings: a key term present in the question earns one point
// for each associated term found in a chunk. It covers the two vocabularies
// the service is actually queried with, ML papers and account/support
// questions.
var semanticMap = map[string][]string{
	// ML / paper vocabulary
	"transformer": {"attention", "encoder", "decoder", "self-attention", "bert", "gpt"},
	"attention":   {"transformer", "query", "key", "value", "softmax", "head"},
	"model":       {"training", "parameters", "weights", "architecture", "neural"},
	"training":    {"model", "loss", "gradient", "epoch", "optimizer", "dataset"},
	"neural":      {"network", "layer", "neuron", "deep", "activation"},
	"embedding":   {"vector", "representation", "dimension", "semantic", "token"},
	"dataset":     {"training", "samples", "labels", "benchmark", "corpus"},
	"evaluation":  {"accuracy", "benchmark", "metric", "score", "baseline"},

	// account / support vocabulary
	"subscription": {"billing", "plan", "payment", "renewal", "cancel"},
	"cancel":       {"subscription", "refund", "terminate", "billing"},
	"billing":      {"invoice", "payment", "charge", "subscription", "refund"},
	"payment":      {"billing", "invoice", "card", "charge", "refund"},
	"account":      {"password", "login", "email", "profile", "settings"},
	"password":     {"reset", "login", "account", "security"},
	"refund":       {"payment", "billing", "return", "cancel"},
	"support":      {"help", "contact", "assistance", "service"},
	"error":        {"issue", "problem", "failure", "bug"},
	"install":      {"setup", "configure", "download", "installation"},
	"upgrade":      {"plan", "version", "premium", "update"},
}

// supportVocabulary is the question-level vocabulary used by the relevance
// gate: if a question uses any of these words and the loaded document
// contains none of them, the question is out of domain for the document.
var supportVocabulary = []string{
	"billing", "subscription", "password", "refund", "account",
	"payment", "invoice", "cancel", "login", "plan", "charge", "support",
}
