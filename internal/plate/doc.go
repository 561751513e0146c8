// Package plate classifies Chinese vehicle license-plate numbers.
//
// A plate number belongs to one of a fixed set of schemes (civil,
// paramilitary, military, embassy, aviation, new-energy). The scheme decides
// how long the number may be and which characters are legal at each
// position. Classification is total: every input string maps to a Type,
// with TypeUnknown as the fallback.
//
// # Classification order
//
//  1. empty string: TypeAutoDetect
//  2. paramilitary province code (QVKHBSLJNGCEZ): TypePLA2012
//  3. embassy marker 使: TypeSHI2007
//  4. civil aviation marker 民: TypeAviation
//  5. 1, 2 or 3: TypeSHI2017
//  6. W: TypeWJ2012 when the third character is a province, else TypeWJ2007
//  7. civil province: TypeNewEnergy or TypeUnknown for 8 characters,
//     TypeCivil otherwise
//  8. anything else: TypeUnknown
//
// Lengths and positions are counted in runes.
package plate
