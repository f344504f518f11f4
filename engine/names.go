package engine

// Export names of the interpreter's C ABI. Every name listed here must be
// present in the guest binary; instantiation fails on the first missing one.
const (
	// Reference counting.
	fnIncRef   = "py_incref"
	fnDecRef   = "py_decref"
	fnRefCount = "py_refcount"

	// Dynamic type queries. The kind argument uses the same numbering as
	// object.Kind.
	fnCheck         = "py_check"
	fnCheckExact    = "py_check_exact"
	fnCallableCheck = "py_callable_check"
	fnNumberCheck   = "py_number_check"
	fnNone          = "py_none"

	// Attributes, length, type introspection.
	fnGetAttr  = "py_getattr"
	fnLen      = "py_len"
	fnTypeName = "py_type_name"
	fnTypeDoc  = "py_type_doc"

	// Strings.
	fnStrFromUTF8 = "py_str_from_utf8"
	fnStrFromWide = "py_str_from_wide"
	fnStrUTF8     = "py_str_utf8"
	fnStrWide     = "py_str_wide"

	// Integers and floats.
	fnLongFromI64    = "py_long_from_i64"
	fnLongFromU64    = "py_long_from_u64"
	fnLongFromString = "py_long_from_string"
	fnLongAsI64      = "py_long_as_i64"
	fnLongAsU64      = "py_long_as_u64"
	fnFloatFromF64   = "py_float_from_f64"
	fnFloatFromStr   = "py_float_from_str"
	fnFloatAsF64     = "py_float_as_f64"

	// Tuples.
	fnTupleNew  = "py_tuple_new"
	fnTupleSize = "py_tuple_size"
	fnTupleGet  = "py_tuple_get"
	fnTupleSet  = "py_tuple_set"

	// Lists.
	fnListNew     = "py_list_new"
	fnListSize    = "py_list_size"
	fnListGet     = "py_list_get"
	fnListSet     = "py_list_set"
	fnListAppend  = "py_list_append"
	fnListInsert  = "py_list_insert"
	fnListSlice   = "py_list_slice"
	fnListSort    = "py_list_sort"
	fnListReverse = "py_list_reverse"
	fnListAsTuple = "py_list_as_tuple"

	// Dicts.
	fnDictNew        = "py_dict_new"
	fnDictSize       = "py_dict_size"
	fnDictGet        = "py_dict_get"
	fnDictSet        = "py_dict_set"
	fnDictDel        = "py_dict_del"
	fnDictContains   = "py_dict_contains"
	fnDictClear      = "py_dict_clear"
	fnDictCopy       = "py_dict_copy"
	fnDictItems      = "py_dict_items"
	fnDictKeys       = "py_dict_keys"
	fnDictValues     = "py_dict_values"
	fnDictSetDefault = "py_dict_setdefault"

	// Calls.
	fnCallNoArgs = "py_call_no_args"
	fnCallOneArg = "py_call_one_arg"
	fnCallObject = "py_call_object"
	fnCall       = "py_call"

	// Modules.
	fnImport         = "py_import"
	fnModuleFilename = "py_module_filename"

	// Allocator domains. pymem_* is the tracked domain, valid only while
	// the interpreter is initialized; pyraw_* is the raw domain.
	fnMemMalloc  = "pymem_malloc"
	fnMemRealloc = "pymem_realloc"
	fnMemFree    = "pymem_free"
	fnRawMalloc  = "pyraw_malloc"
	fnRawRealloc = "pyraw_realloc"
	fnRawFree    = "pyraw_free"

	// Locale codec.
	fnEncodeLocale = "py_encode_locale"
	fnDecodeLocale = "py_decode_locale"

	// Lifecycle and informational getters.
	fnInitialize     = "py_initialize"
	fnFinalize       = "py_finalize"
	fnIsInitialized  = "py_is_initialized"
	fnRunSimple      = "py_run_simple"
	fnGetVersion     = "py_get_version"
	fnGetPlatform    = "py_get_platform"
	fnGetProgramName = "py_get_program_name"
	fnGetPrefix      = "py_get_prefix"
	fnGetExecPrefix  = "py_get_exec_prefix"
	fnGetPath        = "py_get_path"
	fnSetPath        = "py_set_path"

	// Error indicator. py_err_kind classifies the pending error without
	// clearing it.
	fnErrOccurred = "py_err_occurred"
	fnErrKind     = "py_err_kind"
)

// allExports enumerates every required export, in resolution order.
var allExports = []string{
	fnIncRef, fnDecRef, fnRefCount,
	fnCheck, fnCheckExact, fnCallableCheck, fnNumberCheck, fnNone,
	fnGetAttr, fnLen, fnTypeName, fnTypeDoc,
	fnStrFromUTF8, fnStrFromWide, fnStrUTF8, fnStrWide,
	fnLongFromI64, fnLongFromU64, fnLongFromString, fnLongAsI64, fnLongAsU64,
	fnFloatFromF64, fnFloatFromStr, fnFloatAsF64,
	fnTupleNew, fnTupleSize, fnTupleGet, fnTupleSet,
	fnListNew, fnListSize, fnListGet, fnListSet, fnListAppend, fnListInsert,
	fnListSlice, fnListSort, fnListReverse, fnListAsTuple,
	fnDictNew, fnDictSize, fnDictGet, fnDictSet, fnDictDel, fnDictContains,
	fnDictClear, fnDictCopy, fnDictItems, fnDictKeys, fnDictValues,
	fnDictSetDefault,
	fnCallNoArgs, fnCallOneArg, fnCallObject, fnCall,
	fnImport, fnModuleFilename,
	fnMemMalloc, fnMemRealloc, fnMemFree,
	fnRawMalloc, fnRawRealloc, fnRawFree,
	fnEncodeLocale, fnDecodeLocale,
	fnInitialize, fnFinalize, fnIsInitialized, fnRunSimple,
	fnGetVersion, fnGetPlatform, fnGetProgramName, fnGetPrefix,
	fnGetExecPrefix, fnGetPath, fnSetPath,
	fnErrOccurred, fnErrKind,
}

// Error classification codes returned by py_err_kind.
const (
	errNone       = 0
	errAllocation = 1
	errEncoding   = 2
	errLookup     = 3
	errConversion = 4
	errOverflow   = 5
	// Anything else is an unclassified pending error.
)
