/*
Package xml usage guidelines:

This package holds the XMl encoder utility. The xml encoder itself takes in a writer.
The encoder has methods such as Array, Map to encode aggregate types.
Methods like String, Integer etc should be used to encode simple types.

Elements:
* Object.Key returns a Value for a named child element; the Value writes its own start tag on its first write.
* NestedElement, Array, ArrayWithCustomName and Map write the start tag and return an encoder that must be closed.

Flattened encoders:
* FlattenedArray and FlattenedMap are used for shapes marked with the flattened trait.
* They do not write a wrapping start tag, and their Close is a noOp.

Simple types encoding:
* All simple type methods on value such as String(), Long() etc; auto close the associated member element.

Array:
* Array returns the collection encoder. It has two modes, wrapped and flattened encoding.
* Wrapped array:
	* Wrapped arrays have two methods Array() and ArrayWithCustomName() which facilitate array member wrapping.
	* By default, a wrapped array members are wrapped with `member` named start element.
	* eg. `<wrappedArray><member>apple</member><member>tree</member></wrappedArray>`
* Flattened array:
	* Flattened arrays are produced by FlattenedArray(), which uses the value's own element name as wrapper for array elements.
	* eg. `<flattenedArray>apple</flattenedArray><flattenedArray>tree</flattenedArray>`

Map:
* Map is the map encoder. It has two modes, wrapped and flattened encoding.
* Wrapped map:
	* Wrapped maps are produced by Map(), which facilitates map entry wrapping.
	* By default, a wrapped map members are wrapped with `entry` named start element.
	* eg. `<wrappedMap><entry><Key>apple</Key><Value>tree</Value></entry><entry><Key>snow</Key><Value>ice</Value></entry></wrappedMap>`
* Flattened map:
	* Flattened maps are produced by FlattenedMap(), which uses the value's own element name as wrapper for map entry elements.
	* eg. `<flattenedMap><Key>apple</Key><Value>tree</Value></flattenedMap><flattenedMap><Key>snow</Key><Value>ice</Value></flattenedMap>`

This utility is written in accordance to our design to delegate to shape serializer function
in which a xml.Value will be passed around.

Resources followed: https://awslabs.github.io/smithy/1.0/spec/core/xml-traits.html#
*/
package xml
