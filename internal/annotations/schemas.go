package annotations

import "fmt"

// ConstructorAnnotationSchema defines the schema for
// //syringe::constructor directives
var ConstructorAnnotationSchema = AnnotationSchema{
	Type:        ConstructorAnnotation,
	Description: "Marks a function as the injection constructor for the type it produces",
	Parameters:  map[string]ParameterSpec{},
	Examples: []string{
		"//syringe::constructor",
	},
}

// ProviderAnnotationSchema defines the schema for //syringe::provider
// directives
var ProviderAnnotationSchema = AnnotationSchema{
	Type:        ProviderAnnotation,
	Description: "Registers a function as a service provider for the lookup registry",
	Parameters: map[string]ParameterSpec{
		"Scope": {
			Type:         StringType,
			Required:     false,
			DefaultValue: "Singleton",
			Description:  "Provider scope: 'Singleton' (default) or 'Transient'",
			Validator: func(v any) error {
				scope := v.(string)
				if scope != "Singleton" && scope != "Transient" {
					return fmt.Errorf("must be 'Singleton' or 'Transient', got '%s'", scope)
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//syringe::provider",
		"//syringe::provider -Scope=Transient",
	},
}

// BuiltinSchemas returns every schema shipped with the tool
func BuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		ConstructorAnnotationSchema,
		ProviderAnnotationSchema,
	}
}
