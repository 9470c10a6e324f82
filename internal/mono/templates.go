package mono

import (
	"sort"
	"strings"
)

// template is one generic container family. Instead of textual placeholder
// substitution, render builds the translation unit from the entry's derived
// names and the resolved element descriptors, which keeps the output
// well-formed by construction.
type template struct {
	arity  int
	render func(e *Entry, descs []Descriptor) string
}

var templates = map[string]template{
	"Array": {arity: 1, render: renderArray},
}

// KnownTemplates returns the registered template names, sorted.
func KnownTemplates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// renderArray produces a growable-array translation unit for one element
// type: a struct of (data, len, capacity) plus the new/free/push/pop/
// reserve/slice/get/set family under the entry's function prefix.
func renderArray(e *Entry, descs []Descriptor) string {
	elem := descs[0].CName

	var b strings.Builder
	b.WriteString("// generated: " + e.Name + " (Array instantiation)\n\n")
	b.WriteString("#include <stdbool.h>\n#include <stddef.h>\n#include <stdlib.h>\n#include <string.h>\n")
	for _, inc := range descs[0].Includes {
		b.WriteString("#include \"" + inc + "\"\n")
	}
	b.WriteString("\n")

	b.WriteString("typedef struct {\n")
	b.WriteString("\t" + elem + "* data;\n")
	b.WriteString("\tsize_t len;\n")
	b.WriteString("\tsize_t capacity;\n")
	b.WriteString("} " + e.Name + ";\n\n")

	fn := func(signature, body string) {
		b.WriteString(signature + " {\n" + body + "}\n\n")
	}

	fn(e.Name+" "+e.Prefix+"_new(void)",
		"\tconst size_t initial_capacity = 8;\n"+
			"\t"+e.Name+" arr = {\n"+
			"\t\t.data = malloc(sizeof("+elem+") * initial_capacity),\n"+
			"\t\t.len = 0,\n"+
			"\t\t.capacity = initial_capacity\n"+
			"\t};\n"+
			"\treturn arr;\n")

	fn(e.Name+" "+e.Prefix+"_with_capacity(size_t capacity)",
		"\t"+e.Name+" arr = {\n"+
			"\t\t.data = malloc(sizeof("+elem+") * capacity),\n"+
			"\t\t.len = 0,\n"+
			"\t\t.capacity = capacity\n"+
			"\t};\n"+
			"\treturn arr;\n")

	fn("void "+e.Prefix+"_free("+e.Name+"* arr)",
		"\tfree(arr->data);\n"+
			"\tarr->data = NULL;\n"+
			"\tarr->len = 0;\n"+
			"\tarr->capacity = 0;\n")

	fn("void "+e.Prefix+"_reserve("+e.Name+"* arr, size_t additional)",
		"\tsize_t required = arr->len + additional;\n"+
			"\tif (required <= arr->capacity) return;\n"+
			"\tsize_t new_capacity = arr->capacity * 2;\n"+
			"\tif (new_capacity < required) new_capacity = required;\n"+
			"\t"+elem+"* new_buf = realloc(arr->data, sizeof("+elem+") * new_capacity);\n"+
			"\tarr->data = new_buf;\n"+
			"\tarr->capacity = new_capacity;\n")

	fn("void "+e.Prefix+"_push("+e.Name+"* arr, "+elem+" elem)",
		"\t"+e.Prefix+"_reserve(arr, 1);\n"+
			"\tarr->data[arr->len++] = elem;\n")

	fn(elem+" "+e.Prefix+"_pop("+e.Name+"* arr)",
		"\tif (arr->len == 0) {\n"+
			"\t\t"+elem+" zero = {0};\n"+
			"\t\treturn zero;\n"+
			"\t}\n"+
			"\treturn arr->data[--arr->len];\n")

	fn(e.Name+" "+e.Prefix+"_slice(const "+e.Name+"* arr, size_t start, size_t end)",
		"\tif (end > arr->len) end = arr->len;\n"+
			"\tif (start > end) start = end;\n"+
			"\tsize_t slice_len = end - start;\n"+
			"\t"+e.Name+" result = "+e.Prefix+"_with_capacity(slice_len);\n"+
			"\tmemcpy(result.data, arr->data + start, slice_len * sizeof("+elem+"));\n"+
			"\tresult.len = slice_len;\n"+
			"\treturn result;\n")

	fn(elem+" "+e.Prefix+"_get(const "+e.Name+"* arr, size_t index)",
		"\tif (index >= arr->len) {\n"+
			"\t\t"+elem+" zero = {0};\n"+
			"\t\treturn zero;\n"+
			"\t}\n"+
			"\treturn arr->data[index];\n")

	fn("bool "+e.Prefix+"_set("+e.Name+"* arr, size_t index, "+elem+" elem)",
		"\tif (index >= arr->len) {\n"+
			"\t\treturn false;\n"+
			"\t}\n"+
			"\tarr->data[index] = elem;\n"+
			"\treturn true;\n")

	return b.String()
}
