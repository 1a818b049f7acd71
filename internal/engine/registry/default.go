package registry

// DefaultVersion identifies the shipped matcher catalogue.
const DefaultVersion = "2.0.0"

// Default builds the shipped catalogue. It covers three input shapes:
// server logs ("[timestamp] LEVEL [service-name] message"), runtime
// exception dumps, and structured bug-report prose with repro/expected
// sections. Strict matchers favor precision, loose matchers recall.
func Default() *Registry {
	return New(DefaultVersion, map[string]FieldPatterns{
		"error_type":          {Strict: errorTypeStrict, Loose: errorTypeLoose},
		"component_module":    {Strict: componentStrict, Loose: componentLoose},
		"trigger_repro_steps": {Strict: reproStrict, Loose: reproLoose},
		"observed_behavior":   {Strict: observedStrict, Loose: observedLoose},
		"expected_behavior":   {Strict: expectedStrict, Loose: expectedLoose},
	})
}

var errorTypeStrict = []Matcher{
	// Runtime exception classes
	matcher(`(?i)\b(NullPointerException|NPE)\b`, 0.95),
	matcher(`(?i)\b(IndexOutOfBoundsException)\b`, 0.95),
	matcher(`(?i)\b(SQLException)\b`, 0.95),
	matcher(`(?i)\b(TimeoutException)\b`, 0.95),
	matcher(`(?i)\b(ConnectionRefusedException)\b`, 0.95),
	matcher(`(?i)\b(FileNotFoundException)\b`, 0.95),
	matcher(`(?i)\b(OutOfMemoryError|Out of memory)\b`, 0.95),
	matcher(`(?i)\b(StackOverflowError)\b`, 0.95),

	// HTTP/API error codes
	matcher(`(?i)\b(5\d{2})\s+(?:Gateway\s+)?(?:Timeout|Error|Internal Server Error)\b`, 0.95),
	matcher(`(?i)\b(4\d{2})\s+(?:Not Found|Unauthorized|Forbidden|Bad Request)\b`, 0.90),

	// Infrastructure failures
	matcher(`(?i)(Connection\s+pool\s+exhausted)`, 0.95),
	matcher(`(?i)(Connection\s+timeout)`, 0.95),
	matcher(`(?i)(Circuit\s+breaker\s+triggered)`, 0.95),
	matcher(`(?i)(Service\s+(?:dependency\s+)?(?:unavailable|unresponsive))`, 0.95),
	matcher(`(?i)(Memory\s+usage\s+critical)`, 0.95),
	matcher(`(?i)(Memory\s+leak\s+detected)`, 0.95),
	matcher(`(?i)(Cascade\s+failure)`, 0.95),
	matcher(`(?i)(Database\s+connection\s+(?:error|failed|timeout))`, 0.95),
	matcher(`(?i)(endpoint\s+timeouts?\s+detected)`, 0.95),
	matcher(`(?i)(Request\s+processing\s+failed)`, 0.90),
	matcher(`(?i)(health\s+(?:status\s+)?(?:degraded|changed\s+to\s+DEGRADED))`, 0.90),
	matcher(`(?i)(queue\s+overflow)`, 0.90),

	// Generic CRITICAL log line: capture the message after the service tag
	matcher(`(?i)CRITICAL\s+\[[^\]]+\]\s+(.+?)(?:\n|$)`, 0.92),
}

var errorTypeLoose = []Matcher{
	// "ERROR [service] message" log lines
	matcher(`(?i)ERROR\s+\[[^\]]+\]\s+([^:\n]+)`, 0.70),

	// Generic error indicators
	matcher(`(?i)(error\s+rate\s+exceeded\s+threshold[^.]*)`, 0.65),
	matcher(`(?i)(failed\s+to\s+[^.:\n]+)`, 0.60),
	matcher(`(?i)(unable\s+to\s+[^.:\n]+)`, 0.60),
	matcher(`(?i)\b(timeout|timed?\s*out)\b`, 0.55),
	matcher(`(?i)\b(failure|failed|crash(?:ed)?)\b`, 0.50),
	matcher(`(?i)\b(degraded|unavailable|unresponsive)\b`, 0.50),
}

var componentStrict = []Matcher{
	// Service name from the log level tag
	matcher(`(?i)ERROR\s+\[([a-zA-Z][\w-]*(?:-[a-zA-Z][\w-]*)*)\]`, 0.95),
	matcher(`(?i)CRITICAL\s+\[([a-zA-Z][\w-]*(?:-[a-zA-Z][\w-]*)*)\]`, 0.95),
	matcher(`(?i)WARN\s+\[([a-zA-Z][\w-]*(?:-[a-zA-Z][\w-]*)*)\]`, 0.90),

	// Service references in error messages
	matcher(`(?i)(?:unavailable|unresponsive)[:\s]+([a-zA-Z][\w-]*-service)`, 0.92),
	matcher(`(?i)([a-zA-Z][\w-]*-service)\s+(?:unavailable|unresponsive|status)`, 0.92),
	matcher(`(?i)services?\s+degraded[:\s]+([a-zA-Z][\w-]*(?:-[a-zA-Z][\w-]*)*)`, 0.90),

	// Package/class references
	matcher(`(?i)in\s+module\s+["']?([A-Za-z0-9_.]+)["']?`, 0.90),
	matcher(`(?i)at\s+([A-Za-z0-9_.]+)\.([A-Za-z0-9_]+)\(`, 0.88),
	matcher(`(?i)in\s+(?:the\s+)?([A-Z][A-Za-z]+(?:Service|Module|Controller|Manager|Handler))`, 0.90),
	matcher(`(?i)component[:\s]+["']?([A-Za-z0-9_.-]+)["']?`, 0.90),
}

var componentLoose = []Matcher{
	// Kebab-case service names
	matcher(`(?i)\b([a-z]+-[a-z]+(?:-[a-z]+)*-?service)\b`, 0.70),
	// Name followed by a health keyword; the keyword is matched but only the
	// name is captured (RE2 has no lookahead).
	matcher(`(?i)\b([a-z]+-[a-z]+(?:-[a-z]+)*)\s+(?:status|unavailable|degraded|error)`, 0.65),

	// CamelCase component names
	matcher(`\b([A-Z][A-Za-z]*Service)\b`, 0.65),
	matcher(`\b([A-Z][A-Za-z]*Controller)\b`, 0.65),
	matcher(`\b([A-Z][A-Za-z]*Manager)\b`, 0.60),
	matcher(`\b([A-Z][A-Za-z]*Handler)\b`, 0.60),

	matcher(`(?i)(?:backend|upstream)\s+service[:\s]+([a-zA-Z][\w-]+)`, 0.70),
}

var reproStrict = []Matcher{
	// Explicit repro headers
	matcher(`(?is)(?:steps?\s+to\s+reproduce|reproduction\s+steps?|repro\s+steps?)[:\s]+(.*?)(?:\n\n|expected|actual|$)`, 0.95),
	matcher(`(?is)(?:how\s+to\s+reproduce|to\s+reproduce)[:\s]+(.*?)(?:\n\n|expected|actual|$)`, 0.90),
	matcher(`(?is)(?:repro)[:\s]+(.*?)(?:\n\n|expected|$)`, 0.85),

	// Numbered step lists
	matcher(`(?m)((?:^|\n)\s*1[.)]\s+.+(?:\n\s*\d[.)]\s+.+)+)`, 0.85),
}

var reproLoose = []Matcher{
	// User action descriptions
	matcher(`(?i)(?:when\s+(?:I|user|you|clicking|accessing))\s+([^.\n]+)`, 0.55),
	matcher(`(?i)(?:(?:click|navigate|go\s+to|open|access|visit)(?:ing|ed)?)\s+([^.\n]+)`, 0.50),
	matcher(`(?i)(?:if\s+you)[:\s]+([^.\n]+)`, 0.45),

	// A run of timestamped log lines acts as the event sequence
	matcher(`(?i)((?:\[\d{4}-[^\]]+\]\s+(?:ERROR|WARN|INFO)[^\n]+\n?){2,})`, 0.60),
}

var observedStrict = []Matcher{
	matcher(`(?is)(?:actual\s+(?:behavior|result)|what\s+happened|observed(?:\s+behavior)?|current\s+behavior)[:\s]+(.*?)(?:\n\n|expected|$)`, 0.95),
	matcher(`(?is)(?:result|outcome)[:\s]+(.*?)(?:\n\n|$)`, 0.85),

	// Impact statements
	matcher(`(?i)((?:customer|user)\s+impact[:\s]+[^\n]+)`, 0.90),
	matcher(`(?i)(\d+\s+users?\s+affected[^\n]*)`, 0.90),
}

var observedLoose = []Matcher{
	matcher(`(?i)(?:ERROR|CRITICAL)[^\]]*\]\s+([^:\n]+(?:failed|error|timeout|unavailable)[^.\n]*)`, 0.65),

	// Consequence descriptions
	matcher(`(?i)(?:but|instead|however)[:\s]+([^.\n]+)`, 0.55),
	matcher(`(?i)(?:shows?|displays?|returns?|gives?)[:\s]+([^.\n]+)`, 0.50),
	matcher(`(?i)(application\s+crash(?:es|ed)?[^.\n]*)`, 0.60),
	matcher(`(?i)(service\s+(?:is\s+)?(?:down|unavailable|unresponsive)[^.\n]*)`, 0.60),
}

var expectedStrict = []Matcher{
	matcher(`(?is)(?:expected\s+(?:behavior|result|outcome)|should\s+(?:be|have|work))[:\s]+(.*?)(?:\n\n|$)`, 0.95),
	matcher(`(?is)(?:acceptance\s+criteria|expected)[:\s]+(.*?)(?:\n\n|$)`, 0.90),
}

var expectedLoose = []Matcher{
	matcher(`(?i)(?:should|must|needs?\s+to)\s+((?:be|have|show|display|work|complete|return|process)[^.\n]+)`, 0.60),
	matcher(`(?i)(?:want|need|expect(?:ing)?)[:\s]+([^.\n]+)`, 0.50),

	matcher(`(?i)(?:normally|correctly|properly|successfully)[,\s]+([^.\n]+)`, 0.55),

	// Stated thresholds and SLAs imply the expected behavior
	matcher(`(?i)(?:threshold|SLA|limit)[:\s]+(\d+[^.\n]*)`, 0.55),
}
