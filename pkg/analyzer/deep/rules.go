package deep

import (
	"strconv"
	"strings"

	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
)

// ruleContext carries the per-run state escape-hatch predicates consult.
// Everything in it is read-only during rule evaluation, so the rules can
// run across pool workers without synchronization.
type ruleContext struct {
	g            *graph.Graph
	reachable    *graph.Set
	instantiated graph.IDSet
}

// escapeRule marks a declaration reachable despite having no direct
// incoming edge. Rules approximate dynamic dispatch, DI, reflection and
// coroutine call sites that never appear as reference edges.
type escapeRule struct {
	name    string
	matches func(ctx *ruleContext, decl *graph.Declaration) bool
}

// escapeRules is evaluated in order; the first match wins. Evaluated
// once per declaration, not to a fixed point: a declaration rescued here
// does not retrigger evaluation of its own children in the same pass.
var escapeRules = []escapeRule{
	{
		name: "override",
		matches: func(_ *ruleContext, decl *graph.Declaration) bool {
			return decl.HasModifier("override") || decl.HasAnnotation("Override")
		},
	},
	{
		name: "primary-constructor",
		matches: func(ctx *ruleContext, decl *graph.Declaration) bool {
			return decl.Kind == graph.KindConstructor &&
				decl.Name == "constructor" &&
				ctx.instantiated.Contains(decl.Parent)
		},
	},
	{
		name: "serialization",
		matches: func(_ *ruleContext, decl *graph.Declaration) bool {
			return isSerializationMember(decl)
		},
	},
	{
		name: "companion-object",
		matches: func(_ *ruleContext, decl *graph.Declaration) bool {
			return decl.Kind == graph.KindObject && decl.HasModifier("companion")
		},
	},
	{
		name: "delegated-property",
		matches: func(_ *ruleContext, decl *graph.Declaration) bool {
			return decl.Kind == graph.KindProperty && decl.HasModifier("delegated")
		},
	},
	{
		name: "suspend-function",
		matches: func(_ *ruleContext, decl *graph.Declaration) bool {
			return isSuspendFunction(decl)
		},
	},
	{
		name: "reactive-stream",
		matches: func(_ *ruleContext, decl *graph.Declaration) bool {
			return isFlowPattern(decl)
		},
	},
}

var serializationAnnotations = []string{
	"Serializable",
	"SerializedName",
	"JsonProperty",
	"JsonField",
	"Parcelize",
	"Parcelable",
	"Entity",
	"ColumnInfo",
	"PrimaryKey",
}

var serializationMethods = []string{
	"writeToParcel",
	"describeContents",
	"createFromParcel",
	"newArray",
	"readFromParcel",
}

// isSerializationMember reports whether a declaration takes part in a
// serialization or persistence protocol, which frameworks invoke
// reflectively.
func isSerializationMember(decl *graph.Declaration) bool {
	for _, pattern := range serializationAnnotations {
		if decl.HasAnnotation(pattern) {
			return true
		}
	}
	if decl.Kind == graph.KindFunction {
		for _, method := range serializationMethods {
			if decl.Name == method {
				return true
			}
		}
	}
	return false
}

func isSuspendFunction(decl *graph.Declaration) bool {
	if decl.Kind != graph.KindFunction && decl.Kind != graph.KindMethod {
		return false
	}
	return decl.HasModifier("suspend")
}

var flowPatterns = []string{
	"Flow",
	"StateFlow",
	"SharedFlow",
	"MutableStateFlow",
	"MutableSharedFlow",
}

// isFlowPattern reports reactive-stream declarations; their collectors
// are wired up at runtime and rarely produce direct call edges.
func isFlowPattern(decl *graph.Declaration) bool {
	for _, pattern := range flowPatterns {
		if strings.Contains(decl.Name, pattern) {
			return true
		}
	}
	return decl.HasAnnotation("FlowPreview") || decl.HasAnnotation("ExperimentalCoroutinesApi")
}

var diAnnotations = []string{
	// Dagger/Hilt providers
	"Provides",
	"Binds",
	"BindsOptionalOf",
	"BindsInstance",
	"IntoMap",
	"IntoSet",
	"ElementsIntoSet",
	"Multibinds",
	// Dagger injection
	"Inject",
	"AssistedInject",
	"AssistedFactory",
	// Koin
	"Factory",
	"Single",
	"KoinViewModel",
	// Room
	"Query",
	"Insert",
	"Update",
	"Delete",
	"RawQuery",
	"Transaction",
	// Retrofit
	"GET",
	"POST",
	"PUT",
	"DELETE",
	"PATCH",
	"HEAD",
	"OPTIONS",
	"HTTP",
	// Lifecycle
	"OnLifecycleEvent",
	// Data binding
	"BindingAdapter",
	"InverseBindingAdapter",
	"BindingMethod",
	"BindingMethods",
	"BindingConversion",
	// Event handlers
	"Subscribe",
	"OnClick",
	// Compose
	"Composable",
	"Preview",
}

// isDIEntryPoint reports declarations invoked by an injection or UI
// framework rather than by user code.
func isDIEntryPoint(decl *graph.Declaration) bool {
	for _, ann := range diAnnotations {
		if decl.HasAnnotation(ann) {
			return true
		}
	}
	return false
}

// isConstProperty reports Kotlin const val properties. They are inlined
// at compile time, so the graph shows them unused even when they are not.
func isConstProperty(decl *graph.Declaration) bool {
	if decl.Kind != graph.KindProperty {
		return false
	}
	if decl.Language != "kotlin" {
		return false
	}
	return decl.HasModifier("const")
}

func isDataClass(decl *graph.Declaration) bool {
	if decl.Kind != graph.KindClass {
		return false
	}
	if decl.Language != "kotlin" {
		return false
	}
	return decl.HasModifier("data")
}

func isSealedType(decl *graph.Declaration) bool {
	if decl.Kind != graph.KindClass && decl.Kind != graph.KindInterface {
		return false
	}
	if decl.Language != "kotlin" {
		return false
	}
	return decl.HasModifier("sealed")
}

// isSynthesizedValueMethod reports compiler-generated members of data
// classes: copy, equals, hashCode, toString and componentN. A malformed
// component suffix is treated as not synthesized.
func isSynthesizedValueMethod(decl *graph.Declaration, g *graph.Graph) bool {
	if decl.Kind != graph.KindMethod && decl.Kind != graph.KindFunction {
		return false
	}
	if decl.Parent == "" {
		return false
	}
	parent, ok := g.Declaration(decl.Parent)
	if !ok || !isDataClass(parent) {
		return false
	}
	switch decl.Name {
	case "copy", "equals", "hashCode", "toString":
		return true
	}
	if suffix, found := strings.CutPrefix(decl.Name, "component"); found {
		_, err := strconv.ParseUint(suffix, 10, 32)
		return err == nil
	}
	return false
}

var debugPatterns = []string{
	"Debug",
	"Debugger",
	"DebugMenu",
	"DebugHelper",
	"DebugPanel",
	"DebugScreen",
	"DebugActivity",
	"DebugFragment",
	"DebugView",
	"DebugListener",
	"DebugReceiver",
}

// isDebugOnlyPattern flags debug-only naming or debug/staging source sets.
func isDebugOnlyPattern(decl *graph.Declaration) bool {
	for _, pattern := range debugPatterns {
		if strings.Contains(decl.Name, pattern) {
			return true
		}
	}
	file := decl.Location.File
	return strings.Contains(file, "/debug/") || strings.Contains(file, "/staging/")
}

var testHelperPatterns = []string{
	"Mock",
	"Fake",
	"Stub",
	"TestHelper",
	"TestUtil",
	"TestData",
	"ForTest",
	"InTest",
}

// isTestHelperPattern flags test doubles that live outside test source
// trees.
func isTestHelperPattern(decl *graph.Declaration) bool {
	file := decl.Location.File
	if strings.Contains(file, "/test/") || strings.Contains(file, "/androidTest/") {
		return false
	}
	for _, pattern := range testHelperPatterns {
		if strings.Contains(decl.Name, pattern) {
			return true
		}
	}
	return false
}

func isDeprecatedUnused(decl *graph.Declaration, g *graph.Graph) bool {
	if !decl.HasAnnotation("Deprecated") {
		return false
	}
	return !g.IsReferenced(decl.ID)
}

var stubIndicators = []string{"Stub", "Empty", "Noop", "NoOp", "Dummy", "Placeholder"}

func isStubImplementation(decl *graph.Declaration) bool {
	for _, indicator := range stubIndicators {
		if strings.Contains(decl.Name, indicator) {
			return true
		}
	}
	return false
}
