// Package catalog holds the schemas the vld command can validate against.
package catalog

import (
	"regexp"
	"slices"
	"strings"

	"github.com/reoring/vld"
	"github.com/reoring/vld/dsl"
	"github.com/reoring/vld/rules"
)

// Entry is a named schema.
type Entry struct {
	Name        string
	Description string
	Schema      vld.AnySchema
}

// Descriptor returns the static description of the entry's schema.
func (e Entry) Descriptor() vld.Descriptor { return vld.DescriptorOf(e.Schema) }

// All returns every entry sorted by name.
func All() []Entry {
	entries := []Entry{
		{Name: "user", Description: "User account", Schema: User()},
		{Name: "notification", Description: "Notification request, one of email, sms or push", Schema: Notification()},
		{Name: "service", Description: "Service deployment document", Schema: Service()},
		{Name: "order", Description: "Order with cross-field rules", Schema: Order()},
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries
}

// Lookup finds an entry by name.
func Lookup(name string) (Entry, bool) {
	for _, e := range All() {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names lists the entry names in order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.Name
	}
	return names
}

func User() dsl.ObjectSchema {
	return dsl.Object().
		Field("name", dsl.String().Trim().Min(2).Max(50)).
		Field("email", dsl.String().Trim().ToLower().Email()).
		FieldOptional("age", dsl.Int().Min(13).Max(130)).
		FieldOptional("website", dsl.String().URL()).
		FieldOptional("tags", dsl.Set(dsl.String().NonEmpty()).Max(10)).
		Field("role", dsl.Default(dsl.Enum("user", "admin", "guest"), "user")).
		FieldOptional("createdAt", dsl.DateTime()).
		Strict().
		Describe("User account")
}

func Notification() dsl.DiscriminatedUnionSchema {
	priority := dsl.Default(dsl.Enum("low", "normal", "high"), "normal")
	return dsl.DiscriminatedUnion("type",
		dsl.VariantOf("email", dsl.Object().
			Field("type", dsl.Literal("email")).
			Field("to", dsl.String().Email()).
			Field("subject", dsl.String().NonEmpty().Max(200)).
			Field("priority", priority)),
		dsl.VariantOf("sms", dsl.Object().
			Field("type", dsl.Literal("sms")).
			Field("phone", dsl.String().Regex(phonePattern)).
			Field("body", dsl.String().NonEmpty().Max(160)).
			Field("priority", priority)),
		dsl.VariantOf("push", dsl.Object().
			Field("type", dsl.Literal("push")).
			Field("token", dsl.String().NonEmpty()).
			FieldOptional("badge", dsl.Int().NonNegative()).
			Field("priority", priority)),
	).Describe("Notification request")
}

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{5,15}$`)
	namePattern  = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// Service is a deployment document. Labels take any key with a short string
// value, and https requires a TLS block.
func Service() dsl.ObjectSchema {
	tls := dsl.Object().
		Field("cert", dsl.String().NonEmpty()).
		Field("key", dsl.String().NonEmpty())
	return dsl.Object().
		Field("name", dsl.String().Regex(namePattern).Max(63)).
		Field("image", dsl.String().NonEmpty()).
		Field("replicas", dsl.Default(dsl.Int().Min(1).Max(100), int64(1))).
		Field("protocol", dsl.Default(dsl.Enum("http", "https"), "http")).
		Field("port", dsl.Int().Min(1).Max(65535)).
		FieldOptional("host", dsl.String().Hostname()).
		FieldOptional("labels", dsl.Object().CatchAll(dsl.String().Max(63))).
		FieldOptional("env", dsl.Record(dsl.String()).MaxKeys(100)).
		FieldOptional("tls", tls).
		When("protocol", "https", "tls", tls).
		Strict().
		Describe("Service deployment document")
}

// Order checks line items and shipping details across fields.
func Order() dsl.SuperRefineSchema[vld.Value] {
	item := dsl.Object().
		Field("sku", dsl.String().NonEmpty()).
		Field("qty", dsl.Int().Positive()).
		Field("price", dsl.Number().NonNegative().Finite())
	order := dsl.Object().
		Field("id", dsl.String().UUID()).
		Field("status", dsl.Enum("pending", "paid", "shipped")).
		Field("items", dsl.Array(item)).
		FieldOptional("tracking", dsl.String()).
		FieldOptional("carrier", dsl.String())
	return dsl.SuperRefine[vld.Value](order, rules.And(
		rules.AtLeastOne("/items"),
		rules.UniqueBy("/items", "/sku"),
		rules.If("/status", rules.Eq, "shipped").Then(rules.RequiredWith("status", "tracking", "carrier")),
	))
}
