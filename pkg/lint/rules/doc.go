// Package rules provides the built-in lint rules for gojslint.
//
// # Rules
//
//   - array-bracket-newline: line breaks after '[' and before ']'
//
//   - func-names: named or unnamed function expressions
//
//   - no-iterator: use of the __iterator__ property
//
//   - no-useless-computed-key: computed keys that are plain literals
//
//   - prefer-destructuring: destructuring instead of member access
//
//   - prefer-async-await: async/await instead of Promise.then()
//
// Every rule embeds lint.BaseRule and returns listeners from Create. Rules
// with options validate them through a lint.Schema, so Create can assume the
// options are well formed.
package rules
