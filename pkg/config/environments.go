package config

import (
	"maps"
	"slices"
	"strings"
)

// Environment is a named preset of globals and parser options enabled with
// the "env" key.
type Environment struct {
	// Globals maps names to whether they are writable.
	Globals       map[string]bool
	ParserOptions ParserOptions
}

func readonly(names string) map[string]bool {
	out := map[string]bool{}
	for _, name := range strings.Fields(names) {
		out[name] = false
	}
	return out
}

func writable(names string) map[string]bool {
	out := map[string]bool{}
	for _, name := range strings.Fields(names) {
		out[name] = true
	}
	return out
}

func union(sets ...map[string]bool) map[string]bool {
	out := map[string]bool{}
	for _, set := range sets {
		maps.Copy(out, set)
	}
	return out
}

const builtinGlobals = `Array ArrayBuffer Boolean DataView Date decodeURI decodeURIComponent
encodeURI encodeURIComponent Error escape eval EvalError Float32Array Float64Array
Function Infinity Int16Array Int32Array Int8Array isFinite isNaN JSON Map Math NaN
Number Object parseFloat parseInt Promise Proxy RangeError ReferenceError Reflect
RegExp Set String Symbol SyntaxError TypeError Uint16Array Uint32Array Uint8Array
Uint8ClampedArray undefined unescape URIError WeakMap WeakSet`

const browserGlobals = `addEventListener alert atob Blob blur btoa cancelAnimationFrame
clearInterval clearTimeout close confirm console CustomEvent document Element Event
fetch focus FormData getComputedStyle history HTMLElement Image localStorage location
matchMedia MutationObserver navigator Node open postMessage prompt removeEventListener
requestAnimationFrame screen scroll sessionStorage setInterval setTimeout URL
WebSocket window Worker XMLHttpRequest`

const nodeGlobals = `__dirname __filename arguments Buffer clearImmediate clearInterval
clearTimeout console exports GLOBAL global module process require root
setImmediate setInterval setTimeout`

const workerGlobals = `addEventListener close importScripts navigator postMessage
removeEventListener self`

const serviceWorkerGlobals = `caches Cache clients Client ExtendableEvent FetchEvent
registration skipWaiting`

//nolint:gochecknoglobals // Read-only lookup table.
var environments = map[string]Environment{
	"builtin": {Globals: readonly(builtinGlobals)},
	"browser": {Globals: union(readonly(browserGlobals), writable("onload onerror onresize onscroll name status"))},
	"node": {
		Globals:       union(readonly(nodeGlobals), writable("exports module")),
		ParserOptions: ParserOptions{EcmaFeatures: map[string]bool{"globalReturn": true}},
	},
	"worker":      {Globals: readonly(workerGlobals)},
	"amd":         {Globals: readonly("define require")},
	"mocha":       {Globals: readonly("after afterEach before beforeEach context describe it mocha run setup specify suite suiteSetup suiteTeardown teardown test xcontext xdescribe xit xspecify")},
	"jasmine":     {Globals: readonly("afterAll afterEach beforeAll beforeEach describe expect fail fdescribe fit it jasmine pending runs spyOn waits waitsFor xdescribe xit")},
	"phantomjs":   {Globals: readonly("console exports phantom require WebPage")},
	"jquery":      {Globals: readonly("$ jQuery")},
	"prototypejs": {Globals: readonly("$ $$ $A $break $continue $F $H $R $w Abstract Ajax Class Enumerable Element Event Field Form Hash Insertion ObjectRange PeriodicalExecuter Position Prototype Selector Template Toggle Try")},
	"shelljs":     {Globals: readonly("cat cd chmod config cp dirs echo env error exec exit find grep ls mkdir mv popd pushd pwd rm sed target tempdir test which")},
	"meteor":      {Globals: readonly("$ _ Accounts App Assets Blaze check Cordova DDP EJSON Email HTTP Match Meteor Mongo MongoInternals Npm Package Random ReactiveVar Session Template Tracker")},
	"mongo":       {Globals: readonly("_isWindows _rand BulkWriteResult cat cd connect db getHostName getMemInfo hostname ISODate listFiles load ls md5sumFile mkdir Mongo NumberInt NumberLong ObjectId PlanCache print printjson pwd quit removeFile rs sh UUID version WriteResult")},
	"applescript": {Globals: readonly("$ Application Automation console delay Library ObjC ObjectSpecifier Path Progress Ref")},
	"serviceworker": {Globals: union(readonly(workerGlobals), readonly(serviceWorkerGlobals))},
	"es6": {
		ParserOptions: ParserOptions{
			EcmaVersion: 6,
			EcmaFeatures: map[string]bool{
				"arrowFunctions":                   true,
				"blockBindings":                    true,
				"regexUFlag":                       true,
				"regexYFlag":                       true,
				"templateStrings":                  true,
				"binaryLiterals":                   true,
				"octalLiterals":                    true,
				"unicodeCodePointEscapes":          true,
				"superInFunctions":                 true,
				"defaultParams":                    true,
				"restParams":                       true,
				"forOf":                            true,
				"objectLiteralComputedProperties":  true,
				"objectLiteralShorthandMethods":    true,
				"objectLiteralShorthandProperties": true,
				"objectLiteralDuplicateProperties": true,
				"generators":                       true,
				"destructuring":                    true,
				"classes":                          true,
			},
		},
	},
}

// LookupEnvironment returns the named environment preset.
func LookupEnvironment(name string) (Environment, bool) {
	env, ok := environments[name]
	return env, ok
}

// EnvironmentNames returns the known environment names, sorted.
func EnvironmentNames() []string {
	return slices.Sorted(maps.Keys(environments))
}
