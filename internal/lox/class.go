package lox

import "fmt"

// loxClass represents a class declaration at runtime. A class is itself
// callable, calling it constructs a new instance.
type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

func newLoxClass(name string, superclass *loxClass, methods map[string]*loxFunction) *loxClass {
	c := new(loxClass)
	c.name = name
	c.superclass = superclass
	c.methods = methods
	return c
}

// findMethod returns the method with the given name, walking up the
// superclass chain. The first definition found from the class upward wins.
func (c *loxClass) findMethod(name string) *loxFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *loxClass) arity() int {
	if initializer := c.findMethod("init"); initializer != nil {
		return initializer.arity()
	}
	return 0
}

func (c *loxClass) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	instance := newLoxInstance(c)
	if initializer := c.findMethod("init"); initializer != nil {
		if _, err := initializer.bind(instance).call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *loxClass) String() string {
	return c.name
}

// loxInstance holds the state of a single object. Fields are added
// dynamically by assignment and shadow methods of the same name.
type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func newLoxInstance(class *loxClass) *loxInstance {
	instance := new(loxInstance)
	instance.class = class
	instance.fields = make(map[string]interface{})
	return instance
}

func (instance *loxInstance) get(name *Token) (interface{}, error) {
	if value, ok := instance.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := instance.class.findMethod(name.Lexeme); method != nil {
		return method.bind(instance), nil
	}
	msg := fmt.Sprintf("Undefined property '%s'.", name.Lexeme)
	return nil, NewRuntimeError(name, msg)
}

func (instance *loxInstance) set(name *Token, value interface{}) {
	instance.fields[name.Lexeme] = value
}

func (instance *loxInstance) String() string {
	return fmt.Sprintf("%s instance", instance.class.name)
}
