package retrieval

// stopWords are question words that carry no retrieval signal: articles,
// pronouns, auxiliary verbs, and common prepositions. A question reduced to
// nothing by this set is too generic to score against.
var stopWords = map[string]struct{}{
	// articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "some": {}, "any": {}, "each": {}, "every": {},
	"either": {}, "neither": {}, "both": {}, "all": {}, "few": {},
	"many": {}, "much": {}, "more": {}, "most": {}, "other": {},
	"another": {}, "such": {}, "no": {}, "own": {}, "same": {},
	"so": {}, "than": {}, "too": {}, "very": {},
	// pronouns
	"i": {}, "me": {}, "my": {}, "myself": {}, "we": {}, "our": {},
	"ours": {}, "ourselves": {}, "you": {}, "your": {}, "yours": {},
	"yourself": {}, "yourselves": {}, "he": {}, "him": {}, "his": {},
	"himself": {}, "she": {}, "her": {}, "hers": {}, "herself": {},
	"it": {}, "its": {}, "itself": {}, "they": {}, "them": {},
	"their": {}, "theirs": {}, "themselves": {}, "what": {},
	"which": {}, "who": {}, "whom": {}, "whose": {},
	// auxiliary verbs
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"having": {}, "do": {}, "does": {}, "did": {}, "doing": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {},
	"could": {}, "may": {}, "might": {}, "must": {}, "ought": {},
	// prepositions and conjunctions
	"and": {}, "but": {}, "if": {}, "or": {}, "because": {}, "as": {},
	"until": {}, "while": {}, "of": {}, "at": {}, "by": {}, "for": {},
	"with": {}, "about": {}, "against": {}, "between": {}, "into": {},
	"through": {}, "during": {}, "before": {}, "after": {}, "above": {},
	"below": {}, "to": {}, "from": {}, "up": {}, "down": {}, "in": {},
	"out": {}, "on": {}, "off": {}, "over": {}, "under": {},
	"again": {}, "further": {}, "then": {}, "once": {}, "here": {},
	"there": {}, "when": {}, "where": {}, "why": {}, "how": {},
	// filler common in questions
	"not": {}, "only": {}, "just": {}, "also": {}, "please": {},
	"tell": {}, "explain": {},
}
