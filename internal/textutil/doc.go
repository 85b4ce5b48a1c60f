// Package textutil holds small text helpers shared by the report writer and
// output naming: line-break flattening and file name sanitizing.
package textutil
