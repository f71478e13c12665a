package method

type Method uint8

const (
	Unknown Method = iota
	GET
	POST
)

// Allowed is the value of the Allow header, listing every method the server routes.
const Allowed = "GET, POST"

// Parse maps the request-line token onto a Method. The comparison is case-sensitive,
// as method names are (RFC 9110, 9.1), so "get" is Unknown.
func Parse(str string) Method {
	switch str {
	case "GET":
		return GET
	case "POST":
		return POST
	default:
		return Unknown
	}
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	default:
		return "UNKNOWN"
	}
}
